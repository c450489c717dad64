package main

import (
	"context"

	txt2csv "github.com/alnah/go-txt2csv"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	ConvertFile(ctx context.Context, inputPath, outputPath string) (*txt2csv.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*txt2csv.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
}

// converterPool adapts txt2csv.ConverterPool to Pool.
type converterPool struct {
	*txt2csv.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = converterPool{}

// newConverterPool creates a pool of n converters sharing opts.
func newConverterPool(n int, opts ...txt2csv.Option) converterPool {
	return converterPool{txt2csv.NewConverterPool(n, opts...)}
}

// Acquire returns nil once the pool is closed.
func (p converterPool) Acquire() CLIConverter {
	conv := p.ConverterPool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

func (p converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*txt2csv.Converter); ok {
		p.ConverterPool.Release(conv)
	}
}
