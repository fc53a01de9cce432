package auth

// Owned is implemented by resources that belong to a single user.
type Owned interface {
	OwnerUsername() string
}

// CanView reports whether acting may view the profile of target.
// Any authenticated identity may view any profile.
func CanView(acting Identity, target string) bool {
	return acting.IsAuthenticated()
}

// CanMutateUser reports whether acting may change or delete target's account
// and add posts on its behalf.
func CanMutateUser(acting Identity, target string) bool {
	return acting.Is(target)
}

// CanMutateFeedback reports whether acting may edit or delete post.
func CanMutateFeedback(acting Identity, post Owned) bool {
	if post == nil {
		return false
	}
	return acting.Is(post.OwnerUsername())
}
