package filesink_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/philipp01105/logsink/core"
	"github.com/philipp01105/logsink/formatter"
	"github.com/philipp01105/logsink/sink/filesink"
)

func ExampleNewExclusive() {
	dir, _ := os.MkdirTemp("", "logsink")
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "app.log")

	f := formatter.NewTextFormatter(formatter.Config{TimestampFormat: "-"})
	s, err := filesink.NewExclusive(name, f)
	if err != nil {
		fmt.Println(err)
		return
	}

	s.Write(&core.Entry{Level: core.InfoLevel, Message: "service started"})
	s.Close()

	data, _ := os.ReadFile(name)
	fmt.Print(string(data))
	// Output: - [INFO] service started
}

func ExampleNew() {
	dir, _ := os.MkdirTemp("", "logsink")
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "shared.log")

	f := formatter.NewTextFormatter(formatter.Config{TimestampFormat: "-"})
	s, err := filesink.New(name, f, filesink.ShareAtomic,
		filesink.WithHeader(func() []*core.Entry {
			return []*core.Entry{{Level: core.InfoLevel, Message: "log opened"}}
		}))
	if err != nil {
		fmt.Println(err)
		return
	}

	ok, _ := s.Append(&core.Entry{Level: core.WarnLevel, Message: "disk almost full"})
	fmt.Println("written:", ok)
	s.Close()

	data, _ := os.ReadFile(name)
	fmt.Print(string(data))
	// Output:
	// written: true
	// - [INFO] log opened
	// - [WARN] disk almost full
}
