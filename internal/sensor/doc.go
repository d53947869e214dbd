// Package sensor translates host input into kernel dispatches and applies
// the effects of committed dispatches back to the host.
//
// A Sensor is the only event-driven layer. Host adapters (see tcellsensor
// and teasensor) convert their native events to KeyEvent, gesture.Event and
// focus notifications and feed them to one Sensor per kernel:
//
//	s := sensor.New(k, sensor.Options{Host: host, Logger: logger})
//	defer s.Close()
//
//	res, _ := s.Key(sensor.KeyEvent{Event: ev})
//	if res.Kind == input.Fallback {
//		// let the focused widget handle the key
//	}
//
// Focus effects are applied under a re-entrance guard so that the host's
// own focus-in notification for an element the kernel just focused does not
// dispatch again.
package sensor
