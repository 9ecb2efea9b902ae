package gate

import (
	"time"

	logentity "github.com/sgacceso/service-acceso-go/internal/accesslog/entity"
)

// Office journal windows, local wall-clock hours.
const (
	officeMorningHour   = 7
	officeAfternoonHour = 16
)

// enforceOfficeWindow applies the office checkpoint's clock-in policy to
// the raw toggle result. It runs only for personnel scanned at the office:
// during the 07:00 hour only an entrada may be recorded, during the 16:00
// hour only a salida, and at any other hour the journal is closed and the
// scan is refused outright.
func enforceOfficeWindow(raw logentity.Accion, now time.Time) (logentity.Accion, error) {
	switch now.Hour() {
	case officeMorningHour:
		if raw == logentity.AccionSalida {
			// An active entrada is already on record.
			return "", reject(CategoryOutsideWindow, MsgJornadaEntradaYaRegistrada)
		}
		return logentity.AccionEntrada, nil
	case officeAfternoonHour:
		if raw == logentity.AccionEntrada {
			// No active entrada on record to close.
			return "", reject(CategoryOutsideWindow, MsgJornadaSinEntrada)
		}
		return logentity.AccionSalida, nil
	default:
		return "", reject(CategoryOutsideWindow, MsgJornadaFueraDeHorario)
	}
}
