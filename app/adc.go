package app

import "rtcore/hal"

const (
	adcFullScale = 0xFFF
	adcRefMilliV = 2500
)

// adcDump prints every ADC channel in volts when button A is pressed.
type adcDump struct {
	s   *system
	adc hal.ADC
}

func startADC(s *system) *adcDump {
	s.banner("ADC_RTApp_MT3620_BareMetal")
	s.logf("Press A to print ADC pin states.")

	demo := &adcDump{s: s, adc: s.h.ADC()}
	if demo.adc == nil {
		s.logf("Error: Failed to initialise ADC.")
	}

	b, err := newButtons(s.h.GPIO(), s.q, []int{hal.PinButtonA}, []func(){demo.press})
	if err != nil {
		s.logf("ERROR: buttons: %v", err)
		return demo
	}
	s.pollButtons(b)
	return demo
}

func (demo *adcDump) press() {
	if demo.adc == nil {
		return
	}
	for _, sample := range demo.adc.Samples() {
		mV := millivolts(sample.Value)
		demo.s.logf("Channel: %d, Data: %d.%03d", sample.Channel, mV/1000, mV%1000)
	}
}

func millivolts(raw uint32) uint32 {
	return raw * adcRefMilliV / adcFullScale
}
