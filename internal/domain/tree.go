package domain

// TreeNode is a device node materialised from one tree walk, for views that
// need the whole tree at once
type TreeNode struct {
	Record     Record
	Err        error // identifier or status query failure, if any
	ChildErr   error // failed FirstChild query from this node
	SiblingErr error // failed NextSibling query from this node
	Properties []PropertyValue
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// IsRoot reports whether the node is the synthetic anchor of the walk
func (n *TreeNode) IsRoot() bool {
	return n.Parent == nil
}

// AddChild appends child and sets its parent
func (n *TreeNode) AddChild(child *TreeNode) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Walk calls fn for the node and every descendant in pre-order, regardless
// of expansion state
func (n *TreeNode) Walk(fn func(node *TreeNode, depth int)) {
	n.walk(fn, 0)
}

func (n *TreeNode) walk(fn func(node *TreeNode, depth int), depth int) {
	fn(n, depth)
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Find returns the first node whose identifier matches id
func (n *TreeNode) Find(id string) *TreeNode {
	if n.Record.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Property returns the value of prop, if it was read for the node
func (n *TreeNode) Property(prop Property) (PropertyValue, bool) {
	for _, v := range n.Properties {
		if v.Property == prop {
			return v, true
		}
	}
	return PropertyValue{}, false
}

// Count returns the number of descendants, not counting the node itself
func (n *TreeNode) Count() int {
	total := 0
	for _, child := range n.Children {
		total += 1 + child.Count()
	}
	return total
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}

// ExpandAll expands the node and every descendant
func (n *TreeNode) ExpandAll() {
	n.Walk(func(node *TreeNode, _ int) {
		node.IsExpanded = true
	})
}
