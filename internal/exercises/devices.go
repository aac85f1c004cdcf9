package exercises

import (
	"fmt"
	"io"
)

// Caller places a call to number, writing the transcript of it to w.
type Caller interface {
	Call(w io.Writer, number string)
}

// Mover is anything that can describe how it moves.
type Mover interface {
	Move(w io.Writer)
}

// Smartphone is a device with storage in GB and battery in percent.
type Smartphone struct {
	Brand   string
	Model   string
	Storage int
	Battery int
}

func (p *Smartphone) Call(w io.Writer, number string) {
	fmt.Fprintf(w, "📞 Calling %s from %s %s...\n", number, p.Brand, p.Model)
}

// Charge adds amount to the battery, capped at 100.
func (p *Smartphone) Charge(w io.Writer, amount int) {
	p.Battery += amount
	if p.Battery > 100 {
		p.Battery = 100
	}
	fmt.Fprintf(w, "🔋 Battery charged to %d%%\n", p.Battery)
}

func (p *Smartphone) String() string {
	return fmt.Sprintf("%s %s | Storage: %dGB | Battery: %d%%", p.Brand, p.Model, p.Storage, p.Battery)
}

// Smartwatch is a Smartphone with fixed 8 GB storage and step tracking.
type Smartwatch struct {
	Smartphone
	FitnessTracking bool
}

// NewSmartwatch returns a watch with fitness tracking enabled.
func NewSmartwatch(brand, model string, battery int) *Smartwatch {
	return &Smartwatch{
		Smartphone:      Smartphone{Brand: brand, Model: model, Storage: 8, Battery: battery},
		FitnessTracking: true,
	}
}

func (s *Smartwatch) Call(w io.Writer, number string) {
	fmt.Fprintf(w, "⌚ Voice call to %s from %s %s Smartwatch.\n", number, s.Brand, s.Model)
}

func (s *Smartwatch) TrackSteps(w io.Writer, steps int) {
	if !s.FitnessTracking {
		fmt.Fprintln(w, "⚠ Fitness tracking is disabled.")
		return
	}
	fmt.Fprintf(w, "Tracking %d steps on %s %s!\n", steps, s.Brand, s.Model)
}

type Car struct{}

func (Car) Move(w io.Writer) { fmt.Fprintln(w, "🚗 Driving on the road...") }

type Plane struct{}

func (Plane) Move(w io.Writer) { fmt.Fprintln(w, "✈️ Flying in the sky...") }

type Boat struct{}

func (Boat) Move(w io.Writer) { fmt.Fprintln(w, "⛵ Sailing on water...") }

// DevicesDemo runs the phone, watch and vehicle demonstration.
func DevicesDemo(w io.Writer) {
	phone := &Smartphone{Brand: "Samsung", Model: "Galaxy S22", Storage: 128, Battery: 75}
	watch := NewSmartwatch("Apple", "Watch Series 7", 60)

	fmt.Fprintln(w, phone)
	phone.Call(w, "+2348012345678")
	phone.Charge(w, 20)

	fmt.Fprintf(w, "\n%s\n", watch)
	watch.Call(w, "+2348098765432")
	watch.TrackSteps(w, 5000)

	fmt.Fprintln(w, "\n--- Vehicle Polymorphism Demo ---")
	for _, v := range []Mover{Car{}, Plane{}, Boat{}} {
		v.Move(w)
	}
}
