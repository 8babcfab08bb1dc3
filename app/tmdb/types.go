package tmdb

// SearchResult is one entry from the /search/tv response
type SearchResult struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	FirstAirDate  string   `json:"first_air_date"`
	OriginCountry []string `json:"origin_country"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// EpisodeStub carries the air-date pointers embedded in show details
type EpisodeStub struct {
	AirDate       string `json:"air_date"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
}

// ShowDetails is the /tv/{id} response
type ShowDetails struct {
	ID               int          `json:"id"`
	Name             string       `json:"name"`
	Status           string       `json:"status"`
	OriginCountry    []string     `json:"origin_country"`
	NumberOfSeasons  int          `json:"number_of_seasons"`
	NextEpisodeToAir *EpisodeStub `json:"next_episode_to_air"`
	LastEpisodeToAir *EpisodeStub `json:"last_episode_to_air"`
}

// Episode is one entry of a season's episode list
type Episode struct {
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
}

type seasonResponse struct {
	Episodes []Episode `json:"episodes"`
}
