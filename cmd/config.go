package cmd

type Config struct {
	HTTPPort              string
	BackendBaseURL        string
	AuthToken             string
	CourierUsername       string
	CourierRole           string
	StorePath             string
	ReloadIntervalSeconds int
	DefaultLat            float64
	DefaultLng            float64
}
