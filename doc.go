// Package txt2csv converts line-oriented text (plain text or HTML source) into
// a single-column CSV file.
//
// # Quick Start
//
// Convert a file with the default converter:
//
//	conv := txt2csv.NewConverter()
//	result, err := conv.ConvertFile(ctx, "dataset.html", "dataset.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d rows, %d blank lines skipped\n", result.Rows, result.Skipped)
//
// # Row Format
//
// Every input line is trimmed, stripped of Unicode category C code points
// (tab, line feed and carriage return excepted), and written as:
//
//	"<line with "" for every ">",
//
// followed by a newline. The trailing comma is part of the format: consumers
// read the file as a two-column table with an empty second column. Lines that
// are empty after cleaning produce no row. ParseRow reverses the format.
//
// # Errors
//
// Failures carry an explicit kind:
//
//	_, err := conv.ConvertFile(ctx, in, out)
//	switch {
//	case errors.Is(err, txt2csv.ErrInputNotFound):
//	    // input path does not exist; output untouched
//	case errors.Is(err, txt2csv.ErrIOFailure):
//	    // read, decode or write failure; output untouched
//	}
//
// KindOf returns the ErrorKind directly. Nothing is retried.
//
// # Parallel Processing
//
// A Converter is stateless and safe for concurrent use. To bound the number of
// files open at once, use ConverterPool:
//
//	pool := txt2csv.NewConverterPool(txt2csv.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.ConvertFile(ctx, in, out)
package txt2csv
