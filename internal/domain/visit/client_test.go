package visit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientData_Normalize(t *testing.T) {
	got, err := ClientData{Name: "  Acme ", Address: "\t1 Main "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, ClientData{Name: "Acme", Address: "1 Main"}, got)

	_, err = ClientData{Name: "   ", Address: "1 Main"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidClient)

	_, err = ClientData{Name: "Acme", Address: ""}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidClient)

	_, err = ClientData{Name: strings.Repeat("é", MaxNameLength), Address: strings.Repeat("a", MaxAddressLength)}.Normalize()
	assert.NoError(t, err)

	_, err = ClientData{Name: strings.Repeat("n", MaxNameLength+1), Address: "1 Main"}.Normalize()
	assert.ErrorIs(t, err, ErrClientTooLong)

	_, err = ClientData{Name: "Acme", Address: strings.Repeat("a", MaxAddressLength+1)}.Normalize()
	assert.ErrorIs(t, err, ErrClientTooLong)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("0192f1c4-7b3a-7cde-8f00-123456789abc"))
	assert.ErrorIs(t, ValidateID(" "), ErrClientNotFound)
	assert.ErrorIs(t, ValidateID(strings.Repeat("k", MaxIDLength+1)), ErrInvalidClientID)
}

func TestPartition_ValidateAndPath(t *testing.T) {
	p := Partition{UserID: "u1", Day: Friday}
	require.NoError(t, p.Validate())
	assert.Equal(t, "users/u1/clients/fri", p.Path())

	assert.ErrorIs(t, Partition{UserID: "", Day: Friday}.Validate(), ErrInvalidPartition)
	assert.ErrorIs(t, Partition{UserID: "u1", Day: "x"}.Validate(), ErrInvalidDay)
}

func TestReversed_DoesNotMutateInput(t *testing.T) {
	in := []Client{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out := Reversed(in)

	assert.Equal(t, []Client{{ID: "c"}, {ID: "b"}, {ID: "a"}}, out)
	assert.Equal(t, "a", in[0].ID)
	assert.Empty(t, Reversed(nil))
}

func TestFind(t *testing.T) {
	cs := []Client{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	c, ok := Find(cs, "b")
	require.True(t, ok)
	assert.Equal(t, "B", c.Name)

	_, ok = Find(cs, "z")
	assert.False(t, ok)
}
