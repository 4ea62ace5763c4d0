package statuses

const (
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)
