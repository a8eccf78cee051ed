package thread_test

import (
	"math/rand"
	"testing"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/thread"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parent(id int64) *int64 {
	return &id
}

func comment(id int64, parentID *int64, text string) domain.Comment {
	return domain.Comment{
		ID:              id,
		PlanID:          7,
		ParentCommentID: parentID,
		Text:            text,
		UserID:          "user-1",
	}
}

func ids(nodes []*thread.Node) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuildTree_Empty(t *testing.T) {
	roots := thread.BuildTree(nil)
	require.NotNil(t, roots)
	assert.Empty(t, roots)

	roots = thread.BuildTree([]domain.Comment{})
	require.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestBuildTree_OrphanPromotedToRoot(t *testing.T) {
	roots := thread.BuildTree([]domain.Comment{
		comment(1, nil, "A"),
		comment(2, parent(1), "B"),
		comment(3, parent(99), "C"),
	})

	require.Len(t, roots, 2)
	assert.Equal(t, []int64{1, 3}, ids(roots))
	assert.Equal(t, "A", roots[0].Text)
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, int64(2), roots[0].Replies[0].ID)
	assert.Equal(t, "B", roots[0].Replies[0].Text)
	assert.Empty(t, roots[0].Replies[0].Replies)
	assert.Equal(t, "C", roots[1].Text)
	assert.Empty(t, roots[1].Replies)
}

func TestBuildTree_SelfReference(t *testing.T) {
	roots := thread.BuildTree([]domain.Comment{
		comment(5, parent(5), "self"),
	})

	require.Len(t, roots, 1)
	assert.Equal(t, int64(5), roots[0].ID)
	assert.Empty(t, roots[0].Replies)
}

func TestBuildTree_ReplyBeforeParent(t *testing.T) {
	roots := thread.BuildTree([]domain.Comment{
		comment(3, parent(1), "late parent reply"),
		comment(1, nil, "root"),
		comment(2, parent(1), "second reply"),
	})

	require.Len(t, roots, 1)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Equal(t, []int64{3, 2}, ids(roots[0].Replies))
}

func TestBuildTree_DeepNesting(t *testing.T) {
	var records []domain.Comment
	records = append(records, comment(1, nil, "root"))
	for id := int64(2); id <= 500; id++ {
		records = append(records, comment(id, parent(id-1), "reply"))
	}

	roots := thread.BuildTree(records)
	require.Len(t, roots, 1)
	assert.Equal(t, 500, thread.Count(roots))

	maxDepth := 0
	thread.Walk(roots, func(_ *thread.Node, depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
	})
	assert.Equal(t, 499, maxDepth)
}

func TestBuildTree_DuplicateIDs(t *testing.T) {
	roots := thread.BuildTree([]domain.Comment{
		comment(1, nil, "first"),
		comment(1, nil, "second"),
		comment(2, parent(1), "reply"),
	})

	// both records survive, the reply goes to the last record carrying id 1
	require.Len(t, roots, 2)
	assert.Equal(t, "first", roots[0].Text)
	assert.Empty(t, roots[0].Replies)
	assert.Equal(t, "second", roots[1].Text)
	require.Len(t, roots[1].Replies, 1)
	assert.Equal(t, int64(2), roots[1].Replies[0].ID)
	assert.Equal(t, 3, thread.Count(roots))
}

func TestBuildTree_CycleIsBroken(t *testing.T) {
	roots := thread.BuildTree([]domain.Comment{
		comment(10, nil, "root"),
		comment(1, parent(3), "a"),
		comment(2, parent(1), "b"),
		comment(3, parent(2), "c"),
		comment(4, parent(2), "points into the cycle"),
	})

	assert.Equal(t, 5, thread.Count(roots))
	require.Len(t, roots, 2)
	assert.Equal(t, []int64{10, 1}, ids(roots))

	cycleRoot := roots[1]
	require.Len(t, cycleRoot.Replies, 1)
	assert.Equal(t, int64(2), cycleRoot.Replies[0].ID)
	assert.Equal(t, []int64{3, 4}, ids(cycleRoot.Replies[0].Replies))
}

func TestBuildTree_DoesNotAliasInput(t *testing.T) {
	records := []domain.Comment{
		comment(1, nil, "A"),
		comment(2, parent(1), "B"),
	}
	roots := thread.BuildTree(records)

	*records[1].ParentCommentID = 42
	records[0].Text = "changed"

	assert.Equal(t, "A", roots[0].Text)
	assert.Equal(t, int64(1), *roots[0].Replies[0].ParentCommentID)
}

func TestBuildTree_Idempotent(t *testing.T) {
	records := randomComments(rand.New(rand.NewSource(3)), 200)
	assert.Equal(t, thread.BuildTree(records), thread.BuildTree(records))
}

// randomComments produces unique ids 1..n whose parents are earlier ids, missing ids,
// the comment itself, or nothing.
func randomComments(r *rand.Rand, n int) []domain.Comment {
	records := make([]domain.Comment, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		var p *int64
		switch r.Intn(5) {
		case 0:
			// root
		case 1:
			p = parent(int64(n) + 1 + r.Int63n(100)) // missing
		case 2:
			p = parent(id) // self
		default:
			p = parent(1 + r.Int63n(id))
		}
		records = append(records, comment(id, p, "x"))
	}
	r.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	return records
}

func TestBuildTree_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for round := 0; round < 50; round++ {
		records := randomComments(r, 1+r.Intn(120))
		roots := thread.BuildTree(records)

		present := make(map[int64]bool, len(records))
		position := make(map[int64]int, len(records))
		for i, rec := range records {
			present[rec.ID] = true
			position[rec.ID] = i
		}

		// completeness
		require.Equal(t, len(records), thread.Count(roots))

		// root promotion
		rootIDs := make(map[int64]bool)
		for _, n := range roots {
			rootIDs[n.ID] = true
		}
		for _, rec := range records {
			if rec.ParentCommentID == nil || *rec.ParentCommentID == rec.ID || !present[*rec.ParentCommentID] {
				assert.True(t, rootIDs[rec.ID], "comment %d must be a root", rec.ID)
			}
		}

		// replies hang off their parent and keep input order
		thread.Walk(roots, func(n *thread.Node, _ int) {
			for i, reply := range n.Replies {
				require.NotNil(t, reply.ParentCommentID)
				assert.Equal(t, n.ID, *reply.ParentCommentID)
				if i > 0 {
					assert.Less(t, position[n.Replies[i-1].ID], position[reply.ID])
				}
			}
		})

		// roots keep input order too
		for i := 1; i < len(roots); i++ {
			assert.Less(t, position[roots[i-1].ID], position[roots[i].ID])
		}
	}
}
