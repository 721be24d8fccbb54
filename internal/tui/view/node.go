// Package view содержит дерево узлов, из которого собирается текст экрана
package view

import "strings"

const indentStep = "  "

// Node - отображаемый узел: строка текста и вложенные узлы.
// Скрытый узел не выводится вместе со всеми потомками.
type Node struct {
	label    string
	visible  bool
	children []*Node
}

// NewNode создает видимый узел
func NewNode(label string) *Node {
	return &Node{label: label, visible: true}
}

// SetLabel задает текст узла. Текст может быть многострочным.
func (n *Node) SetLabel(label string) {
	n.label = label
}

// Label возвращает текст узла
func (n *Node) Label() string {
	return n.label
}

// SetVisible задает видимость узла
func (n *Node) SetVisible(visible bool) {
	n.visible = visible
}

// Visible сообщает, виден ли узел
func (n *Node) Visible() bool {
	return n.visible
}

// Append добавляет дочерние узлы
func (n *Node) Append(children ...*Node) {
	n.children = append(n.children, children...)
}

// Children возвращает дочерние узлы
func (n *Node) Children() []*Node {
	return n.children
}

// Lines возвращает строки видимого поддерева. Потомки сдвигаются относительно родителя;
// узел с пустым текстом служит контейнером и не сдвигает потомков.
func (n *Node) Lines() []string {
	var lines []string
	n.collect("", &lines)
	return lines
}

// Render возвращает текст видимого поддерева
func (n *Node) Render() string {
	return strings.Join(n.Lines(), "\n")
}

func (n *Node) collect(indent string, lines *[]string) {
	if !n.visible {
		return
	}

	childIndent := indent
	if n.label != "" {
		for _, line := range strings.Split(n.label, "\n") {
			*lines = append(*lines, indent+line)
		}
		childIndent += indentStep
	}

	for _, child := range n.children {
		child.collect(childIndent, lines)
	}
}
