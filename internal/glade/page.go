package glade

const (
	PageSize        = 4096 // 4 kilobytes
	DefaultMaxPages = 1000
)

type PageIndex uint32

// Page is the authoritative in-memory copy of one page of the database file.
// Callers holding a *Page mutate Data in place.
type Page struct {
	Index PageIndex
	Data  []byte
}

func newPage(idx PageIndex) *Page {
	return &Page{
		Index: idx,
		Data:  make([]byte, PageSize),
	}
}

func pageOffset(idx PageIndex) int64 {
	return int64(idx) * int64(PageSize)
}
