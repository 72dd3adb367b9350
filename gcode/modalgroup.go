package gcode

// ModalGroup classifies words of the printer g-code dialect; only one
// word of each group may appear per block.
type ModalGroup byte

const (
	ModalGroupNone = iota
	ModalGroupNonModal
	ModalGroupMotion
	ModalGroupDistanceMode
	ModalGroupExtruderMode
	ModalGroupUnits
	ModalGroupStopping
	ModalGroupMotorCurrent
	ModalGroupFeedRate
)

func (w Word) ModalGroup() ModalGroup {
	if w.W == 'G' {
		switch w.Arg {
		case 4, 28, 92:
			return ModalGroupNonModal
		case 0, 1:
			return ModalGroupMotion
		case 90, 91:
			return ModalGroupDistanceMode
		case 20, 21:
			return ModalGroupUnits
		}
	} else if w.W == 'M' {
		switch w.Arg {
		case 0, 1, 2, 30:
			return ModalGroupStopping
		case 82, 83:
			return ModalGroupExtruderMode
		case 907, 908:
			return ModalGroupMotorCurrent
		}
	} else if w.W == 'F' {
		return ModalGroupFeedRate
	}

	return ModalGroupNone
}
