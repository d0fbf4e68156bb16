package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBullets(t *testing.T) {
	n := Normalized{Lines: []Line{
		{Display: "USA: 126 total medals"},
		{Display: "usa: 126 TOTAL medals"},
		{Display: "ok"},
		{Display: "---"},
		{Display: "China: 91 total medals"},
	}}

	got := BuildBullets(n, 3)
	assert.Equal(t, []string{"USA: 126 total medals", "China: 91 total medals"}, got.Items)
	assert.Equal(t, 2, got.Len())
}

func TestBuildBulletsNoData(t *testing.T) {
	got := BuildBullets(Normalized{NoData: true}, 3)
	assert.Zero(t, got.Len())
}
