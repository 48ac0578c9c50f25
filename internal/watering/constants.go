package watering

// Log messages
const (
	LogMsgInvalidDuration   = "Invalid timer duration, using fallback"
	LogMsgWaterRejected     = "Watering rejected"
	LogMsgPlantWatered      = "Plant watered"
	LogMsgPlantNeedsWater   = "Plant is waiting for water"
	LogMsgPlantWithered     = "Plant withered"
	LogMsgPlantSurvived     = "Plant survived wither check"
	LogMsgPublishFailed     = "Failed to publish watering event"
	LogMsgManagerDisposed   = "Watering manager disposed"
	LogMsgWitherFailed      = "Wither transition failed"
	LogMsgTimerAfterDispose = "Timer request after dispose ignored"
)

// Log field keys
const (
	LogFieldPlantID   = "plant_id"
	LogFieldStage     = "stage"
	LogFieldSeconds   = "seconds"
	LogFieldFallback  = "fallback"
	LogFieldDuration  = "duration"
	LogFieldReason    = "reason"
	LogFieldCancelled = "cancelled"
	LogFieldError     = "error"
	LogFieldEventType = "event_type"
)

// Timer kinds, used as metric labels
const (
	TimerKindGrowth = "growth"
	TimerKindWither = "wither"
)
