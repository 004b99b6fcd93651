package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aligator/gofds"
	"github.com/spf13/afero"
)

// main is just a example main to play with GoFDS.
func main() {
	argsWithoutProg := os.Args[1:]
	if len(argsWithoutProg) <= 0 {
		fmt.Println("Please provide a filename.")
		os.Exit(1)
	}

	data, err := gofds.LoadFile(argsWithoutProg[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fds := gofds.New(data)
	fmt.Printf("Opened dump with %v disk images\n\n", len(fds.Images()))

	var first string
	afero.Walk(fds, "", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			fmt.Println(err)
			return err
		}
		fmt.Println(path, info.IsDir(), info.Size(), info.ModTime())
		if first == "" && !info.IsDir() {
			first = path
		}
		return nil
	})

	if first == "" {
		fmt.Println("no files found")
		return
	}

	file, err := fds.Open(first)
	if err != nil {
		fmt.Println("could not open the file", err)
		os.Exit(1)
	}

	defer file.Close()
	stat, err := file.Stat()
	if err != nil {
		fmt.Println("could not stat the file", err)
		os.Exit(1)
	}

	buffer := make([]byte, 16)
	offset, err := file.Seek(-int64(len(buffer)), io.SeekEnd)
	if err != nil {
		// Files shorter than the buffer are read from the start.
		offset = 0
	}

	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		fmt.Println("could not read the file", err)
		os.Exit(1)
	}
	fmt.Printf("\n\nLast bytes of %v (size %v, from offset %v):\n\n", stat.Name(), stat.Size(), offset)
	gofds.Dump(os.Stdout, buffer[:n], 0, n, -1)
}
