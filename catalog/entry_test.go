package catalog

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Resolve(t *testing.T) {
	loc := MapLocalizer(map[string]string{"general": "General"})

	tests := []struct {
		name    string
		field   Field
		t       Localizer
		want    string
		wantErr bool
	}{
		{name: "literal", field: Literal("Advanced"), t: loc, want: "Advanced"},
		{name: "literal without localizer", field: Literal("Advanced"), want: "Advanced"},
		{name: "message", field: Message("general"), t: loc, want: "General"},
		{name: "missing message", field: Message("nope"), t: loc, want: ""},
		{name: "computed without localizer", field: Message("general"), wantErr: true},
		{
			name: "computed panics",
			field: Computed(func(Localizer) string {
				panic("translation table not loaded")
			}),
			t:       loc,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Resolve(tt.t)
			if tt.wantErr {
				require.True(t, errors.Is(err, ErrMalformedEntry), "got %v", err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestField_ComputedCalledPerResolve(t *testing.T) {
	calls := 0
	f := Computed(func(t Localizer) string {
		calls++
		return t("k")
	})
	require.True(t, f.IsComputed())
	assert.False(t, Literal("x").IsComputed())

	_, _ = f.Resolve(MapLocalizer(map[string]string{"k": "one"}))
	got, _ := f.Resolve(MapLocalizer(map[string]string{"k": "two"}))

	assert.Equal(t, 2, calls)
	assert.Equal(t, "two", got)
}

func TestMapLocalizer_CopiesInput(t *testing.T) {
	messages := map[string]string{"k": "before"}
	loc := MapLocalizer(messages)
	messages["k"] = "after"

	assert.Equal(t, "before", loc("k"))
}

func TestEntry_Field(t *testing.T) {
	e := Entry{Fields: map[string]Field{KeyTab: Literal("General")}}

	_, ok := e.Field(KeyTab)
	assert.True(t, ok)
	_, ok = e.Field(KeyDescription)
	assert.False(t, ok)
	_, ok = (Entry{}).Field(KeyTab)
	assert.False(t, ok, "nil Fields should report absent")
}
