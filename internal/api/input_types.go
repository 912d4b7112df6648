package api

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type periodDayPayload struct {
	Date  string  `json:"date"`
	Flow  string  `json:"flow"`
	Notes *string `json:"notes"`
}

type periodDayPatchPayload struct {
	Flow  *string `json:"flow"`
	Notes *string `json:"notes"`
}

type cyclePayload struct {
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Flow      *string `json:"flow"`
	Notes     *string `json:"notes"`
}

type cyclePatchPayload struct {
	EndDate *string `json:"endDate"`
	Flow    *string `json:"flow"`
	Notes   *string `json:"notes"`
}

type cycleDayPayload struct {
	Date  string  `json:"date"`
	Flow  *string `json:"flow"`
	Notes *string `json:"notes"`
}

type cycleDayPatchPayload struct {
	Flow  *string `json:"flow"`
	Notes *string `json:"notes"`
}

type symptomLogPayload struct {
	Date        string         `json:"date"`
	Symptoms    map[string]any `json:"symptoms"`
	SleepHours  *float64       `json:"sleepHours"`
	StressLevel *int           `json:"stressLevel"`
	Notes       *string        `json:"notes"`
}

type healthMetricsPayload struct {
	Birthdate string  `json:"birthdate"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	UseMetric *bool   `json:"useMetric"`
}

type notificationSettingsPayload struct {
	PeriodReminders    bool `json:"periodReminders"`
	OvulationReminders bool `json:"ovulationReminders"`
	DailyReminders     bool `json:"dailyReminders"`
	InsightsReminders  bool `json:"insightsReminders"`
	AnomalyReminders   bool `json:"anomalyReminders"`
}

type profilePayload struct {
	Name string `json:"name"`
}

type passwordChangePayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type accountDeletePayload struct {
	Password string `json:"password"`
}
