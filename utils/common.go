package utils

// Below this spacing Catmull-Rom knot intervals are treated as coincident
const KNOTTOL = 1.e-4
