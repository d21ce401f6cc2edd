package model

// SpawnPoint describes where and how many agents of a behavior profile appear.
type SpawnPoint struct {
	ID       int64
	Profile  string
	Position Vec3
	Count    int
}
