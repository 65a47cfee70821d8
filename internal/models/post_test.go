package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_LabelIDs_SkipsNilAndUnpersisted(t *testing.T) {
	p := &Post{Labels: []*Label{{ID: 3}, nil, {Name: "draft"}, {ID: 1}}}
	assert.Equal(t, []int64{3, 1}, p.LabelIDs())
}

func TestPost_LabelIDs_Empty(t *testing.T) {
	p := &Post{}
	assert.Empty(t, p.LabelIDs())
	assert.NotNil(t, p.LabelIDs())
}

func TestPost_WriterID(t *testing.T) {
	assert.Equal(t, int64(0), (&Post{}).WriterID())
	assert.Equal(t, int64(6), (&Post{Writer: &Writer{ID: 6}}).WriterID())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"", StatusActive, false},
		{"ACTIVE", StatusActive, false},
		{"DELETED", StatusDeleted, false},
		{"archived", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseDeletePolicy(t *testing.T) {
	p, err := ParseDeletePolicy("hard")
	assert.NoError(t, err)
	assert.Equal(t, DeleteHard, p)

	_, err = ParseDeletePolicy("purge")
	assert.Error(t, err)
}
