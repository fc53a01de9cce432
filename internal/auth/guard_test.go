package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type post struct{ owner string }

func (p post) OwnerUsername() string { return p.owner }

func TestCanView(t *testing.T) {
	assert.True(t, CanView(Authenticated("alice"), "alice"))
	assert.True(t, CanView(Authenticated("bob"), "alice"))
	assert.False(t, CanView(Anonymous(), "alice"))
}

func TestCanMutateUser(t *testing.T) {
	tests := []struct {
		name   string
		acting Identity
		target string
		want   bool
	}{
		{name: "self", acting: Authenticated("alice"), target: "alice", want: true},
		{name: "other user", acting: Authenticated("bob"), target: "alice", want: false},
		{name: "anonymous", acting: Anonymous(), target: "alice", want: false},
		{name: "anonymous empty target", acting: Anonymous(), target: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutateUser(tt.acting, tt.target))
		})
	}
}

func TestCanMutateFeedback(t *testing.T) {
	owned := post{owner: "alice"}

	identities := []Identity{
		Anonymous(),
		Authenticated("alice"),
		Authenticated("bob"),
		Authenticated("alice2"),
		Authenticated("Alice"),
	}

	for _, acting := range identities {
		t.Run(acting.String(), func(t *testing.T) {
			want := acting.Is("alice")
			assert.Equal(t, want, CanMutateFeedback(acting, owned))
		})
	}

	assert.False(t, CanMutateFeedback(Authenticated("alice"), nil))
}

func TestIdentity(t *testing.T) {
	anon := Anonymous()
	assert.False(t, anon.IsAuthenticated())
	assert.Equal(t, "anonymous", anon.String())
	_, ok := anon.Username()
	assert.False(t, ok)

	var zero Identity
	assert.Equal(t, anon, zero)

	alice := Authenticated("alice")
	name, ok := alice.Username()
	assert.True(t, ok)
	assert.Equal(t, "alice", name)
	assert.True(t, alice.Is("alice"))
	assert.False(t, alice.Is("bob"))

	assert.False(t, Authenticated("").IsAuthenticated())
}
