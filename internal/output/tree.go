package output

import (
	"path"
	"sort"
	"strings"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
	directorySuffix     = "/"
)

type treeNode struct {
	name        string
	isDirectory bool
	children    map[string]*treeNode
}

func newDirectoryNode(name string) *treeNode {
	return &treeNode{name: name, isDirectory: true, children: make(map[string]*treeNode)}
}

// buildTree arranges forward-slash file paths under a root directory node.
func buildTree(rootName string, filePaths []string) *treeNode {
	root := newDirectoryNode(rootName)
	for _, filePath := range filePaths {
		segments := strings.Split(path.Clean(filePath), "/")
		current := root
		for index, segment := range segments {
			isLeaf := index == len(segments)-1
			child, exists := current.children[segment]
			if !exists {
				if isLeaf {
					child = &treeNode{name: segment}
				} else {
					child = newDirectoryNode(segment)
				}
				current.children[segment] = child
			}
			if !child.isDirectory {
				break
			}
			current = child
		}
	}
	return root
}

// sortedChildren lists directories before files, each group in name order.
func (node *treeNode) sortedChildren() []*treeNode {
	children := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		children = append(children, child)
	}
	sort.Slice(children, func(left, right int) bool {
		if children[left].isDirectory != children[right].isDirectory {
			return children[left].isDirectory
		}
		return children[left].name < children[right].name
	})
	return children
}

func (node *treeNode) label() string {
	if node.isDirectory {
		return node.name + directorySuffix
	}
	return node.name
}

func treeNodeLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

func renderTreeNode(builder *strings.Builder, node *treeNode, prefix string, isRoot bool, isLast bool) {
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isRoot, isLast)
	builder.WriteString(linePrefix + node.label() + "\n")
	children := node.sortedChildren()
	for index, child := range children {
		renderTreeNode(builder, child, childPrefix, false, index == len(children)-1)
	}
}

// renderTree draws the directory structure of filePaths beneath rootName.
func renderTree(rootName string, filePaths []string) string {
	var builder strings.Builder
	renderTreeNode(&builder, buildTree(rootName, filePaths), "", true, true)
	return builder.String()
}
