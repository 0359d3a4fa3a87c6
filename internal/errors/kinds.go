package errors

// Enumerated failure kinds for the map toolkit. Callers classify with Is;
// context is attached at the failure site with Wrap or Wrapf.
var (
	// ErrInsufficientWaypoints is returned when a route is requested from
	// fewer than two waypoints.
	ErrInsufficientWaypoints = New("at least two waypoints are required")

	// ErrInvalidParameter is returned for out-of-range speed, frequency,
	// zoom, or interpolation parameters.
	ErrInvalidParameter = New("invalid parameter")

	// ErrProvider is returned for any non-2xx or malformed response from a
	// map provider.
	ErrProvider = New("map provider request failed")

	// ErrCacheIO is returned for filesystem errors reading or writing a
	// cached tile.
	ErrCacheIO = New("tile cache i/o failed")

	// ErrOffNetwork is returned when a pose cannot be matched because the
	// road graph holds no edges.
	ErrOffNetwork = New("position is off the road network")

	// ErrEmpty is returned when an operation requires prior computation
	// that has not been run.
	ErrEmpty = New("required input has not been computed")
)
