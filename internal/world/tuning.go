package world

const (
	SpawnX             = 100.0 // x where new clusters appear
	DespawnX           = -20.0 // entities left of this are recycled
	SeparationBase     = 20.0  // minimum gap between cluster spawns
	SeparationSpread   = 1.5   // separation is redrawn from [base, base*spread]
	ScaleUnit          = 0.01  // model units to world units
	ClusterUnit        = 1.0   // member spacing inside a cluster, per unit of scale
	DefaultScrollSpeed = 12.0
	ScoreRate          = 10.0 // points per second survived
	ScoreDigits        = 5
)

// sizeClass is one choice of obstacle size for a cluster.
type sizeClass struct {
	scale      float64
	maxMembers int
}

var sizeClasses = [...]sizeClass{
	{scale: 1, maxMembers: 2},
	{scale: 0.5, maxMembers: 3},
}
