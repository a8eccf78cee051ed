// Package thread turns the flat list of a plan's comments into reply trees.
package thread

import (
	"github.com/prpradhan13/myBuddy-sub000/internal/domain"

	"github.com/sirupsen/logrus"
)

// Node is a comment together with its direct replies, in the order they were seen.
type Node struct {
	domain.Comment
	Replies []*Node `json:"replies"`
}

// BuildTree converts comments into a forest of reply threads.
//
// Roots are the comments without a parent, plus every comment whose parent is missing from
// the input or is the comment itself. Replies keep the relative order of the input.
// Comment ids are expected to be unique; when they are not, the last record with a given id
// receives the replies addressed to that id, and every record is still part of the result.
// If the parent links form a cycle, the first-seen member of the cycle becomes a root.
//
// The result is built from scratch on every call and shares no state with the input.
func BuildTree(records []domain.Comment) []*Node {
	nodes := make([]*Node, len(records))
	index := make(map[int64]int, len(records)) // id -> position of the node owning the id
	for i, rec := range records {
		if rec.ParentCommentID != nil {
			parentID := *rec.ParentCommentID
			rec.ParentCommentID = &parentID
		}
		nodes[i] = &Node{Comment: rec, Replies: []*Node{}}
		if prev, ok := index[rec.ID]; ok {
			logrus.Debugf("thread: duplicate comment id %d at positions %d and %d, keeping the last", rec.ID, prev, i)
		}
		index[rec.ID] = i
	}

	promoted := breakCycles(records, index)

	roots := make([]*Node, 0)
	for i, rec := range records {
		parentPos, ok := parentPosition(rec, index)
		if !ok || promoted[i] {
			roots = append(roots, nodes[i])
			continue
		}
		parent := nodes[parentPos]
		parent.Replies = append(parent.Replies, nodes[i])
	}

	return roots
}

// parentPosition resolves the node a record replies to. Missing parents and
// self-references resolve to nothing.
func parentPosition(rec domain.Comment, index map[int64]int) (int, bool) {
	if rec.ParentCommentID == nil || *rec.ParentCommentID == rec.ID {
		return 0, false
	}
	pos, ok := index[*rec.ParentCommentID]
	return pos, ok
}

const (
	unvisited = iota
	inPath
	settled
)

// breakCycles finds parent-link cycles among the indexed nodes and returns the positions
// to promote to root, one per cycle. Every node has at most one parent, so each walk up
// the chain either reaches a root, a settled node, or a node on the current path.
func breakCycles(records []domain.Comment, index map[int64]int) map[int]bool {
	promoted := make(map[int]bool)
	state := make([]int, len(records))

	for start := range records {
		pos := index[records[start].ID]
		var path []int
		cyclic := false
		for state[pos] != settled {
			if state[pos] == inPath {
				cyclic = true
				break
			}
			state[pos] = inPath
			path = append(path, pos)
			next, ok := parentPosition(records[pos], index)
			if !ok {
				break
			}
			pos = next
		}

		if cyclic {
			// pos is on the current path: everything from its first occurrence on is the cycle.
			first := pos
			for i := len(path) - 1; i >= 0; i-- {
				if path[i] < first {
					first = path[i]
				}
				if path[i] == pos {
					break
				}
			}
			promoted[first] = true
			logrus.Debugf("thread: comment %d is part of a reply cycle, promoting it to root", records[first].ID)
		}

		for _, p := range path {
			state[p] = settled
		}
	}

	return promoted
}

// Count returns the number of nodes in the forest, replies included.
func Count(nodes []*Node) int {
	total := 0
	Walk(nodes, func(*Node, int) {
		total++
	})
	return total
}

// Walk visits the forest depth-first, parents before their replies. Roots have depth 0.
func Walk(nodes []*Node, fn func(node *Node, depth int)) {
	type frame struct {
		node  *Node
		depth int
	}
	stack := make([]frame, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{nodes[i], 0})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(top.node, top.depth)
		for i := len(top.node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, frame{top.node.Replies[i], top.depth + 1})
		}
	}
}
