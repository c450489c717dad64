package txt2csv_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	txt2csv "github.com/alnah/go-txt2csv"
)

// Example converts text held in memory.
func Example() {
	input := "hello\n\nhe said \"hi\"\n   \na\u0007b\n"

	var out strings.Builder
	result, err := txt2csv.NewConverter().Convert(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(out.String())
	fmt.Printf("%d rows, %d skipped\n", result.Rows, result.Skipped)
	// Output:
	// "hello",
	// "he said ""hi""",
	// "ab",
	// 3 rows, 2 skipped
}

// ExampleConverter_ConvertFile shows how a missing input is reported.
func ExampleConverter_ConvertFile() {
	dir, err := os.MkdirTemp("", "txt2csv-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	_, err = txt2csv.NewConverter().ConvertFile(context.Background(),
		filepath.Join(dir, "missing.html"), filepath.Join(dir, "out.csv"))

	kind, _ := txt2csv.KindOf(err)
	fmt.Println(kind, errors.Is(err, txt2csv.ErrInputNotFound))
	// Output: InputNotFound true
}

func ExampleFormatRow() {
	fmt.Println(txt2csv.FormatRow(`<a href="/">home</a>`))
	// Output: "<a href=""/"">home</a>",
}

func ExampleParseRow() {
	v, err := txt2csv.ParseRow(`"he said ""hi""",`)
	fmt.Println(v, err)
	// Output: he said "hi" <nil>
}

func ExampleSanitize() {
	fmt.Printf("%q\n", txt2csv.Sanitize("tab\tbell\u0007zero\u200bwidth"))
	// Output: "tab\tbellzerowidth"
}
