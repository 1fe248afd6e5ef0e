package scanner

import (
	"testing"

	"github.com/lumipallolabs/imageinfo/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestLatestSink(t *testing.T) {
	var s LatestSink

	_, ok := s.Latest()
	assert.False(t, ok)
	assert.False(t, s.Done())

	s.Update(model.ProgressEvent{RootsScanned: 0, RootsTotal: 7})
	s.Update(model.ProgressEvent{RootsScanned: 1, RootsTotal: 7, Root: model.RootDocuments})
	s.Finish()

	e, ok := s.Latest()
	assert.True(t, ok)
	assert.Equal(t, 1, e.RootsScanned)
	assert.Equal(t, model.RootDocuments, e.Root)
	assert.True(t, s.Done())

	s.Reset()
	_, ok = s.Latest()
	assert.False(t, ok)
	assert.False(t, s.Done())
}

func TestChannelSinkDropsWhenFull(t *testing.T) {
	s := NewChannelSink(1)
	s.Update(model.ProgressEvent{RootsScanned: 0})
	s.Update(model.ProgressEvent{RootsScanned: 1})
	s.Finish()
	s.Finish()

	var got []int
	for e := range s.Progress() {
		got = append(got, e.RootsScanned)
	}
	assert.Equal(t, []int{0}, got)
}

func TestMultiSink(t *testing.T) {
	latest := &LatestSink{}
	var count int
	m := MultiSink{latest, FuncSink(func(model.ProgressEvent) { count++ })}

	m.Update(model.ProgressEvent{RootsScanned: 2})
	m.Finish()

	e, _ := latest.Latest()
	assert.Equal(t, 2, e.RootsScanned)
	assert.True(t, latest.Done())
	assert.Equal(t, 1, count)
}
