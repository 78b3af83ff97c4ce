package glade

// InternalNode only carries the common header. Child pointers, key routing
// and node splits are not implemented, a tree never grows past its root leaf.
type InternalNode struct {
	Header Header
	page   *Page
}

func (n *InternalNode) CommonHeader() Header {
	return n.Header
}

func (n *InternalNode) Page() *Page {
	return n.page
}

func (n *InternalNode) isNode() {}
