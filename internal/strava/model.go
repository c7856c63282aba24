package strava

// Activity is a mirrored strava activity. Only the strava id is kept, the
// heart-rate samples hang off the local row.
type Activity struct {
	ID       int   `json:"id"`
	UserID   int   `json:"-"`
	StravaID int64 `json:"strava_id"`
}

type HeartRateSample struct {
	ID         int64 `json:"id"`
	ActivityID int   `json:"activity_id"`
	HeartRate  int   `json:"heart_rate"`
	TimeOffset int   `json:"time_offset"`
}

// Token is the stored strava credential of one user, mutated in place
// on refresh. ExpiresAt is a unix epoch, as strava reports it.
type Token struct {
	ID              int    `json:"id"`
	UserID          int    `json:"user_id"`
	AccessToken     string `json:"-"`
	RefreshToken    string `json:"-"`
	ExpiresAt       int64  `json:"expires_at"`
	StravaAthleteID int64  `json:"strava_athlete_id"`
}

// ActivitySummary is the subset of the strava activity list response
// that the sync cares about.
type ActivitySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ActivityStream holds the paired heartrate/time streams of one activity.
// Strava returns them keyed by type, each with a data array; elements pair
// up by index.
type ActivityStream struct {
	HeartRates  []int `json:"-"`
	TimeOffsets []int `json:"-"`
}

// Zip pairs heart rates with time offsets by index. Mismatched lengths
// truncate to the shorter stream.
func (s *ActivityStream) Zip() []HeartRateSample {
	n := len(s.HeartRates)
	if len(s.TimeOffsets) < n {
		n = len(s.TimeOffsets)
	}
	samples := make([]HeartRateSample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, HeartRateSample{
			HeartRate:  s.HeartRates[i],
			TimeOffset: s.TimeOffsets[i],
		})
	}
	return samples
}

// TokenData is the strava token endpoint response, for both the
// authorization code exchange and the refresh grant.
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	Athlete      struct {
		ID int64 `json:"id"`
	} `json:"athlete"`
}
