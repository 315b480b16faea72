package game

import "errors"

// Error message constants shared by errors and the messages shown to the player.
const (
	ErrMsgNotEnoughStamina = "not enough stamina"
	ErrMsgNotEnoughMoney   = "not enough money"
	ErrMsgInvalidPlot      = "invalid plot"
	ErrMsgPlotOccupied     = "plot already occupied"
	ErrMsgUnknownCrop      = "unknown crop"
	ErrMsgCropLocked       = "crop is locked"
	ErrMsgUnknownItem      = "unknown item"
	ErrMsgAlreadyOwned     = "already owned"
	ErrMsgTooDark          = "too dark to work without a lantern"
	ErrMsgMerchantClosed   = "merchant only trades in the morning"
	ErrMsgFishingLocked    = "fishing is locked"
	ErrMsgSleepDaytime     = "can only sleep at night"
	ErrMsgCorruptSave      = "corrupt save"
)

var (
	ErrNotEnoughStamina = errors.New(ErrMsgNotEnoughStamina)
	ErrNotEnoughMoney   = errors.New(ErrMsgNotEnoughMoney)
	ErrInvalidPlot      = errors.New(ErrMsgInvalidPlot)
	ErrPlotOccupied     = errors.New(ErrMsgPlotOccupied)
	ErrUnknownCrop      = errors.New(ErrMsgUnknownCrop)
	ErrCropLocked       = errors.New(ErrMsgCropLocked)
	ErrUnknownItem      = errors.New(ErrMsgUnknownItem)
	ErrAlreadyOwned     = errors.New(ErrMsgAlreadyOwned)
	ErrTooDark          = errors.New(ErrMsgTooDark)
	ErrMerchantClosed   = errors.New(ErrMsgMerchantClosed)
	ErrFishingLocked    = errors.New(ErrMsgFishingLocked)
	ErrSleepDaytime     = errors.New(ErrMsgSleepDaytime)
	ErrCorruptSave      = errors.New(ErrMsgCorruptSave)
)

// Outcome is what every player-facing operation hands back to the presentation layer.
// OK=false never implies a partial mutation.
type Outcome struct {
	OK      bool
	Message string
	Err     error
}

func succeed(message string) Outcome {
	return Outcome{OK: true, Message: message}
}

func decline(err error, message string) Outcome {
	return Outcome{OK: false, Message: message, Err: err}
}
