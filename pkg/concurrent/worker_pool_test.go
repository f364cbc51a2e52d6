package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunKeepsJobOrder(t *testing.T) {
	jobs := make([]int, 200)
	for i := range jobs {
		jobs[i] = i
	}

	got := Run(8, jobs, func(j int) int { return j * j })

	assert.Len(t, got, len(jobs))
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestRunNoJobs(t *testing.T) {
	got := Run(4, []string{}, func(s string) int { return len(s) })
	assert.Empty(t, got)
}

func TestWorkerPoolSequence(t *testing.T) {
	wp := NewWorkerPool[string, int](3, 10)
	wp.Start(func(s string) int { return len(s) })

	words := []string{"a", "bb", "ccc", "dddd"}
	for _, w := range words {
		wp.AddJob(w)
	}
	wp.Close()
	wp.Wait()

	results := make([]Result[int], 0, len(words))
	for res := range wp.CollectResults() {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Seq < results[j].Seq })

	for i, res := range results {
		assert.Equal(t, i, res.Seq)
		assert.Equal(t, len(words[i]), res.Value)
	}
}
