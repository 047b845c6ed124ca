package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"

	"github.com/jero98772/Filesystem/filesystem"
	"github.com/jero98772/Filesystem/shellapi"
)

func main() {
	app := cli.App{
		Usage: "Create and explore minifs disk images",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a new image",
				Action:    createImage,
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size-mb", Value: 1, Usage: "image size in MiB"},
				},
			},
			{
				Name:      "shell",
				Usage:     "Open an interactive shell over an image",
				Action:    runShell,
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "create", Usage: "create the image first"},
					&cli.IntFlag{Name: "size-mb", Value: 1, Usage: "image size in MiB, with --create"},
				},
			},
			{
				Name:      "inventory",
				Usage:     "Export the whole tree as CSV",
				Action:    exportInventory,
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Required: true, Usage: "output CSV path"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func createImage(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: minifsctl create IMAGE")
	}

	result := shellapi.CreateFilesystem(path, c.Int("size-mb"))
	if errMsg, ok := result["error"]; ok {
		return fmt.Errorf("%v", errMsg)
	}
	fmt.Println(result["message"])
	return nil
}

func runShell(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: minifsctl shell IMAGE")
	}

	if c.Bool("create") {
		result := shellapi.CreateFilesystem(path, c.Int("size-mb"))
		if errMsg, ok := result["error"]; ok {
			return fmt.Errorf("%v", errMsg)
		}
	}

	fs, err := shellapi.OpenFilesystem(path)
	if err != nil {
		return err
	}
	defer fs.Close()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("minifs %s — type 'help' for commands, 'exit' to quit\n", path)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		fields := strings.Fields(line)
		result := shellapi.ExecuteCommand(fs, fields[0], fields[1:])
		printResult(result)
	}
}

func printResult(result shellapi.Result) {
	if errMsg, ok := result["error"]; ok {
		fmt.Printf("error: %v\n", errMsg)
		return
	}
	for key, value := range result {
		fmt.Printf("%s: %v\n", key, value)
	}
}

// inventoryRow is one line of the CSV export produced by `minifsctl
// inventory`: a flattened listing of every path in the image, grounded on
// the same github.com/gocarina/gocsv tagging style the rest of the pack
// uses for its own metadata tables.
type inventoryRow struct {
	Path     string `csv:"path"`
	Type     string `csv:"type"`
	Size     uint32 `csv:"size"`
	Created  uint64 `csv:"created"`
	Modified uint64 `csv:"modified"`
}

func exportInventory(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: minifsctl inventory --out FILE IMAGE")
	}

	fs, err := shellapi.OpenFilesystem(path)
	if err != nil {
		return err
	}
	defer fs.Close()

	rows, err := walkInventory(fs, "/")
	if err != nil {
		return err
	}

	out, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer out.Close()

	return gocsv.MarshalFile(&rows, out)
}

func walkInventory(fs *filesystem.FileSystem, path string) ([]inventoryRow, error) {
	info, err := fs.GetFileInfo(path)
	if err != nil {
		return nil, err
	}

	rows := []inventoryRow{{
		Path:     path,
		Type:     info.Type,
		Size:     info.Size,
		Created:  info.Created,
		Modified: info.Modified,
	}}

	if info.Type != "DIRECTORY" {
		return rows, nil
	}

	children, err := fs.ListDirectory(path)
	if err != nil {
		return nil, err
	}

	for _, name := range children {
		childPath := path
		if !strings.HasSuffix(childPath, "/") {
			childPath += "/"
		}
		childPath += name

		childRows, err := walkInventory(fs, childPath)
		if err != nil {
			return nil, err
		}
		rows = append(rows, childRows...)
	}

	return rows, nil
}
