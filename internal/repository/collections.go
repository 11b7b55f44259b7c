package repository

// Collection names shared by the Mongo repositories and the index setup.
const (
	UsersCollection       = "users"
	ActivitiesCollection  = "activities"
	CompletionsCollection = "completedActivities"
	CampsCollection       = "camps"
	CampKidsCollection    = "camp_kids"
	PointLogsCollection   = "pointLogs"
)
