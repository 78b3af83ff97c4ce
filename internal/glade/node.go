package glade

import (
	"fmt"
)

type NodeType byte

const (
	NodeInternal NodeType = iota
	NodeLeaf
)

func (t NodeType) String() string {
	switch t {
	case NodeInternal:
		return "internal"
	case NodeLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Header is the common prefix of every node page:
// [node_type 1 byte][is_root 1 byte][parent 4 bytes]
type Header struct {
	Type   NodeType
	IsRoot bool
	Parent PageIndex
}

const CommonHeaderSize = 1 + 1 + 4

func (h *Header) Size() uint64 {
	return CommonHeaderSize
}

func (h *Header) Marshal(buf []byte) ([]byte, error) {
	size := h.Size()
	if uint64(cap(buf)) >= size {
		buf = buf[:size]
	} else {
		buf = make([]byte, size)
	}

	buf[0] = byte(h.Type)
	if h.IsRoot {
		buf[1] = 1
	} else {
		buf[1] = 0
	}
	marshalUint32(buf, uint32(h.Parent), 2)

	return buf, nil
}

func (h *Header) Unmarshal(buf []byte) (uint64, error) {
	if uint64(len(buf)) < h.Size() {
		return 0, fmt.Errorf("%w: node header needs %d bytes, got %d", errShortBuffer, h.Size(), len(buf))
	}

	switch NodeType(buf[0]) {
	case NodeInternal, NodeLeaf:
	default:
		return 0, fmt.Errorf("%w: unrecognised node type byte %d", ErrCorruptNode, buf[0])
	}

	h.Type = NodeType(buf[0])
	h.IsRoot = buf[1] == 1
	h.Parent = PageIndex(unmarshalUint32(buf, 2))

	return h.Size(), nil
}

// Node is either *InternalNode or *LeafNode.
type Node interface {
	CommonHeader() Header
	Page() *Page
	isNode()
}

// LoadNode decodes the node stored in a page, dispatching on the node type
// byte. The page is not modified, an unknown type byte yields ErrCorruptNode.
func LoadNode(aPage *Page) (Node, error) {
	var header Header
	if _, err := header.Unmarshal(aPage.Data); err != nil {
		return nil, fmt.Errorf("page %d: %w", aPage.Index, err)
	}

	switch header.Type {
	case NodeInternal:
		return &InternalNode{Header: header, page: aPage}, nil
	case NodeLeaf:
		aNode := &LeafNode{page: aPage}
		if _, err := aNode.Header.Unmarshal(aPage.Data); err != nil {
			return nil, fmt.Errorf("page %d: %w", aPage.Index, err)
		}
		return aNode, nil
	default:
		return nil, fmt.Errorf("page %d: %w: node type %s", aPage.Index, ErrCorruptNode, header.Type)
	}
}
