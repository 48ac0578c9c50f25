package reward

// Log messages
const (
	LogMsgNotHarvestable = "Harvest reward skipped, plant not harvestable"
	LogMsgRewardSettled  = "Harvest reward settled"
)

// Log field keys
const (
	LogFieldPlantID   = "plant_id"
	LogFieldStage     = "stage"
	LogFieldCoins     = "coins"
	LogFieldPetals    = "petals"
	LogFieldPetalType = "petal_type"
)
