package glade

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/RichardKnop/glade/pkg/lrucache"
)

type PagerOption func(*pagerImpl)

func WithMaxPages(maxPages int) PagerOption {
	return func(p *pagerImpl) {
		if maxPages > 0 {
			p.maxPages = uint32(maxPages)
		}
	}
}

// WithMaxCachedPages bounds the number of pages held in memory. When the
// cache is full, the least recently used page is written back and dropped.
// Bounds below MinCachedPages are raised to it.
func WithMaxCachedPages(maxCachedPages int) PagerOption {
	return func(p *pagerImpl) {
		if maxCachedPages > 0 {
			p.maxCachedPages = max(maxCachedPages, MinCachedPages)
		}
	}
}

func WithPagerLogger(logger *zap.Logger) PagerOption {
	return func(p *pagerImpl) {
		p.logger = logger
	}
}

type pagerImpl struct {
	maxPages       uint32
	maxCachedPages int // 0 = unlimited

	// pages is a sparse array where index = PageIndex,
	// nil entries are pages never touched or evicted
	pages []*Page
	lru   *lrucache.Cache[PageIndex]

	file     DBFile
	fileSize int64
	// persisted is the number of pages backed by the file, a page with
	// a lower index is read from disk on cache miss
	persisted uint32
	closed    bool

	logger *zap.Logger
	mu     sync.Mutex
}

// NewPager wraps an open database file, recording its size at open time.
func NewPager(file DBFile, opts ...PagerOption) (*pagerImpl, error) {
	aPager := &pagerImpl{
		maxPages: DefaultMaxPages,
		file:     file,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(aPager)
	}
	aPager.lru = lrucache.New[PageIndex](aPager.maxCachedPages)

	fileSize, err := aPager.file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	aPager.fileSize = fileSize

	// A partial page can be saved at the end of the file
	persisted := fileSize / PageSize
	if fileSize%PageSize != 0 {
		persisted += 1
	}
	aPager.persisted = uint32(persisted)

	return aPager, nil
}

func (p *pagerImpl) MaxPages() uint32 {
	return p.maxPages
}

func (p *pagerImpl) FileSize() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fileSize
}

// TotalPages returns number of pages either persisted or touched in memory.
func (p *pagerImpl) TotalPages() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.persisted
	if uint32(len(p.pages)) > total {
		total = uint32(len(p.pages))
	}
	return total
}

// GetPage returns the cached page, loading it from disk or allocating
// a zero filled page on cache miss.
func (p *pagerImpl) GetPage(ctx context.Context, pageIdx PageIndex) (*Page, error) {
	if uint32(pageIdx) >= p.maxPages {
		return nil, ErrPageOverflow
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errPagerClosed
	}

	if int(pageIdx) < len(p.pages) && p.pages[pageIdx] != nil {
		p.lru.Touch(pageIdx)
		return p.pages[pageIdx], nil
	}

	if err := p.evictIfNeeded(); err != nil {
		return nil, err
	}

	aPage := newPage(pageIdx)
	if uint32(pageIdx) < p.persisted {
		_, err := p.file.ReadAt(aPage.Data, pageOffset(pageIdx))
		// Trailing partial page is zero extended
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading page %d: %w", pageIdx, err)
		}
		p.logger.Sugar().With("page_index", int(pageIdx)).Debug("loaded page from disk")
	} else {
		p.logger.Sugar().With("page_index", int(pageIdx)).Debug("allocated new page")
	}

	// Extend sparse array with nil entries, slice index = page index
	for len(p.pages) < int(pageIdx)+1 {
		p.pages = append(p.pages, nil)
	}
	p.pages[pageIdx] = aPage
	p.lru.Touch(pageIdx)

	return aPage, nil
}

// Flush writes every cached page to disk in ascending page order.
func (p *pagerImpl) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errPagerClosed
	}
	return p.flushAll()
}

// Close flushes all cached pages and closes the file. It is the only
// durability point unless the cache is bounded.
func (p *pagerImpl) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errPagerClosed
	}
	flushErr := p.flushAll()
	p.closed = true
	p.pages = nil

	// The file is released even when pages could not be written
	return errors.Join(flushErr, p.file.Close())
}

func (p *pagerImpl) flushAll() error {
	flushed := 0
	for _, aPage := range p.pages {
		if aPage == nil {
			continue
		}
		if err := p.writePage(aPage); err != nil {
			return err
		}
		flushed += 1
	}
	p.logger.Sugar().With("pages", flushed).Debug("flushed pages")
	return nil
}

// must be called with lock held
func (p *pagerImpl) writePage(aPage *Page) error {
	offset := pageOffset(aPage.Index)
	if _, err := p.file.WriteAt(aPage.Data, offset); err != nil {
		return fmt.Errorf("error writing page %d: %w", aPage.Index, err)
	}
	if end := offset + PageSize; end > p.fileSize {
		p.fileSize = end
	}
	if uint32(aPage.Index) >= p.persisted {
		p.persisted = uint32(aPage.Index) + 1
	}
	return nil
}

// evictIfNeeded writes back and drops the least recently used page when the
// cache is full. Page 0 is never evicted. Must be called with lock held.
func (p *pagerImpl) evictIfNeeded() error {
	if !p.lru.Full() {
		return nil
	}

	victim, ok := p.lru.Victim(func(idx PageIndex) bool { return idx == 0 })
	if !ok {
		return nil
	}

	if err := p.writePage(p.pages[victim]); err != nil {
		return err
	}
	p.pages[victim] = nil
	p.lru.Remove(victim)

	p.logger.Sugar().With("page_index", int(victim)).Debug("evicted page")

	return nil
}
