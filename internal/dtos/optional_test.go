package dtos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type optionalProbe struct {
	Rent    Optional[float64] `json:"rent"`
	Deposit Optional[float64] `json:"deposit"`
	Note    Optional[string]  `json:"note"`
}

func TestOptionalAbsentField(t *testing.T) {
	var p optionalProbe
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

	require.False(t, p.Rent.Present)
	require.False(t, p.Rent.Null)
}

func TestOptionalExplicitNull(t *testing.T) {
	var p optionalProbe
	require.NoError(t, json.Unmarshal([]byte(`{"deposit": null}`), &p))

	require.True(t, p.Deposit.Present)
	require.True(t, p.Deposit.Null)
	require.Nil(t, p.Deposit.Ptr())
}

func TestOptionalExplicitValue(t *testing.T) {
	var p optionalProbe
	require.NoError(t, json.Unmarshal([]byte(`{"rent": 1850.50, "note": "corner unit"}`), &p))

	require.True(t, p.Rent.Present)
	require.False(t, p.Rent.Null)
	require.Equal(t, 1850.50, p.Rent.Value)

	notePtr := p.Note.Ptr()
	require.NotNil(t, notePtr)
	require.Equal(t, "corner unit", *notePtr)
}

func TestOptionalZeroValueIsNotNull(t *testing.T) {
	var p optionalProbe
	require.NoError(t, json.Unmarshal([]byte(`{"rent": 0}`), &p))

	require.True(t, p.Rent.Present)
	require.False(t, p.Rent.Null)
	require.Equal(t, 0.0, p.Rent.Value)
}

func TestOptionalPtrIfPresent(t *testing.T) {
	require.Nil(t, Optional[string]{}.PtrIfPresent())
	require.Nil(t, Null[string]().PtrIfPresent())

	got := Some("hello").PtrIfPresent()
	require.NotNil(t, got)
	require.Equal(t, "hello", *got)
}

func TestOptionalMarshalRoundTrip(t *testing.T) {
	p := optionalProbe{
		Rent:    Some(1200.0),
		Deposit: Null[float64](),
	}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"rent":1200,"deposit":null,"note":null}`, string(out))
}

func TestOptionalInvalidPayload(t *testing.T) {
	var p optionalProbe
	require.Error(t, json.Unmarshal([]byte(`{"rent": "not-a-number"}`), &p))
}
