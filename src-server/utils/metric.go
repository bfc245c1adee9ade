package utils

type Metric struct {
	DatabaseWrite chan float64
	SearchLatency chan float64
	EventsPlaced  chan int
	SlotsScanned  chan int
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseWrite: make(chan float64),
		SearchLatency: make(chan float64),
		EventsPlaced:  make(chan int),
		SlotsScanned:  make(chan int),
	}
}
