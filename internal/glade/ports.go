package glade

import (
	"context"
	"io"
)

type DBFile interface {
	io.ReaderAt
	io.WriterAt
	io.Seeker
	io.Closer
}

type Parser interface {
	Parse(context.Context, string) (Statement, error)
}

type Pager interface {
	GetPage(context.Context, PageIndex) (*Page, error)
	TotalPages() uint32
	MaxPages() uint32
	Flush(context.Context) error
	Close(context.Context) error
}

// RowStore is implemented by both on-disk layouts.
type RowStore interface {
	Insert(context.Context, Row) (RowIndex, error)
	Select(context.Context, RowIndex) (Row, error)
	RowCount() uint64
	Close(context.Context) error
}
