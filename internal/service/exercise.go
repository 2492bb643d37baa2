package service

// LightbulbCount is the size of the difficulty indicator shown per exercise.
const LightbulbCount = 5

// DifficultyLightbulbs maps a difficulty rating onto a fixed-size indicator:
// the first min(difficulty, n) entries are lit. Ratings beyond the array
// clamp to all-lit, negative ratings to all-dark.
func DifficultyLightbulbs(difficulty, n int) []bool {
	if n <= 0 {
		return []bool{}
	}
	lit := difficulty
	if lit < 0 {
		lit = 0
	}
	if lit > n {
		lit = n
	}
	bulbs := make([]bool, n)
	for i := 0; i < lit; i++ {
		bulbs[i] = true
	}
	return bulbs
}
