package experience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/pipelines/internal/datefmt"
	"github.com/amishk599/pipelines/internal/model"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
}

type recorder struct {
	updates      []model.Experience
	indexes      []int
	valid        []bool
	validPresent []bool
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		Update: func(e model.Experience, i int) {
			r.updates = append(r.updates, e)
			r.indexes = append(r.indexes, i)
		},
		SetValid:        func(v bool) { r.valid = append(r.valid, v) },
		SetValidPresent: func(v bool) { r.validPresent = append(r.validPresent, v) },
	}
}

func (r *recorder) last() model.Experience {
	return r.updates[len(r.updates)-1]
}

func TestNewForm_Empty(t *testing.T) {
	rec := &recorder{}
	f, err := NewForm(nil, 0, rec.callbacks(), WithClock(fixedClock()))
	require.NoError(t, err)

	assert.Empty(t, rec.updates, "initialisation must not push an update")
	assert.Equal(t, []bool{true}, rec.valid)
	assert.Equal(t, []bool{true}, rec.validPresent)
	assert.Equal(t, model.Experience{Date: " - "}, f.Entry())
	assert.NotEqual(t, [16]byte{}, [16]byte(f.ID))
}

func TestNewForm_SeedsFromEntry(t *testing.T) {
	entry := &model.Experience{Company: "Google", Title: "SWE", Date: "September 2020 - Present"}
	f, err := NewForm(entry, 3, Callbacks{}, WithClock(fixedClock()))
	require.NoError(t, err)

	assert.Equal(t, 3, f.Index())
	assert.Equal(t, "Google", f.Company())
	assert.Equal(t, "SWE", f.Title())
	assert.Equal(t, "2020-09", f.StartDate())
	assert.Equal(t, "", f.EndDate())
	assert.True(t, f.Present())
	assert.Equal(t, *entry, f.Entry())
}

func TestNewForm_BadDate(t *testing.T) {
	_, err := NewForm(&model.Experience{Date: "Smarch 2020 - Present"}, 0, Callbacks{})
	assert.ErrorIs(t, err, datefmt.ErrInvalidMonth)
}

func TestForm_HandlersRegenerateDate(t *testing.T) {
	rec := &recorder{}
	f, err := NewForm(nil, 2, rec.callbacks(), WithClock(fixedClock()))
	require.NoError(t, err)

	f.SetCompany("Meta")
	assert.Equal(t, model.Experience{Company: "Meta", Date: " - "}, rec.last())

	f.SetTitle("Engineer")
	assert.Equal(t, model.Experience{Company: "Meta", Title: "Engineer", Date: " - "}, rec.last())

	require.NoError(t, f.SetStartDate("2020-09"))
	assert.Equal(t, "September 2020 - ", rec.last().Date)

	require.NoError(t, f.SetEndDate("2021-09"))
	assert.Equal(t, "September 2020 - September 2021", rec.last().Date)

	f.SetPresent(true)
	assert.Equal(t, "September 2020 - Present", rec.last().Date)

	// An end month edit while present keeps the Present marker.
	require.NoError(t, f.SetEndDate("2022-01"))
	assert.Equal(t, "September 2020 - Present", rec.last().Date)

	f.SetPresent(false)
	assert.Equal(t, "September 2020 - January 2022", rec.last().Date)

	for _, i := range rec.indexes {
		assert.Equal(t, 2, i)
	}
}

func TestForm_RejectsBadMonthValue(t *testing.T) {
	rec := &recorder{}
	f, err := NewForm(nil, 0, rec.callbacks())
	require.NoError(t, err)

	assert.ErrorIs(t, f.SetStartDate("2020-13"), datefmt.ErrInvalidMonth)
	assert.ErrorIs(t, f.SetEndDate("20-01"), datefmt.ErrInvalidFormat)
	assert.Empty(t, rec.updates)
	assert.Equal(t, "", f.StartDate())
}

func TestForm_FlagsFollowEdits(t *testing.T) {
	rec := &recorder{}
	f, err := NewForm(nil, 0, rec.callbacks(), WithClock(fixedClock()))
	require.NoError(t, err)

	require.NoError(t, f.SetStartDate("2021-09"))
	require.NoError(t, f.SetEndDate("2021-08"))
	assert.False(t, f.Flags().Valid)
	assert.False(t, rec.valid[len(rec.valid)-1])

	require.NoError(t, f.SetEndDate("2021-10"))
	assert.True(t, f.Flags().Valid)

	require.NoError(t, f.SetStartDate("2025-01"))
	f.SetPresent(true)
	assert.False(t, f.Flags().ValidPresent)
	assert.False(t, rec.validPresent[len(rec.validPresent)-1])

	f.SetPresent(false)
	assert.True(t, f.Flags().ValidPresent)
}
