package showcase

import (
	"strings"
	"testing"

	"github.com/kjstillabower/vehicle-fleet-service/internal/vehicle"
)

// TestLines_DefaultScenario pins the full 15-line sequence for the canonical
// pair, including the exact float rendering of the car's efficiency.
func TestLines_DefaultScenario(t *testing.T) {
	car, moto := Default()
	want := []string{
		"--- Car Information ---",
		"Vehicle: Toyota Corolla (2023)",
		"Car engine started with key ignition",
		"Fuel efficiency: 11.11111111111111 km/l",
		"Beep beep!",
		"--- Motorcycle Information ---",
		"Vehicle: Honda CBR (2023)",
		"Motorcycle engine started with kick start",
		"Fuel efficiency: 55.2 km/l",
		"Performing a wheelie!",
		"--- Using Polymorphism ---",
		"Vehicle: Toyota Corolla (2023)",
		"Car engine started with key ignition",
		"Vehicle: Honda CBR (2023)",
		"Motorcycle engine started with kick start",
	}

	got := Lines(car, moto)
	if len(got) != len(want) {
		t.Fatalf("Lines() returned %d lines, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i+1, got[i], want[i])
		}
	}
}

// TestLines_SidecarScenario checks the wheelie refusal and sidecar efficiency
// flow through to the output.
func TestLines_SidecarScenario(t *testing.T) {
	car := vehicle.NewCar("Toyota", "Corolla", 2023, 4, 2.0)
	moto := vehicle.NewMotorcycle("Ural", "Gear Up", 2022, true)

	got := Lines(car, moto)
	if got[3] != "Fuel efficiency: 10 km/l" {
		t.Errorf("car efficiency line = %q, want %q", got[3], "Fuel efficiency: 10 km/l")
	}
	if got[8] != "Fuel efficiency: 40.5 km/l" {
		t.Errorf("motorcycle efficiency line = %q, want %q", got[8], "Fuel efficiency: 40.5 km/l")
	}
	if got[9] != "Cannot do wheelie with sidecar attached!" {
		t.Errorf("wheelie line = %q, want refusal message", got[9])
	}
}

// TestLines_ZeroEngineSize preserves IEEE-754 division: the line renders +Inf
// instead of panicking.
func TestLines_ZeroEngineSize(t *testing.T) {
	car := vehicle.NewCar("Toyota", "Corolla", 2023, 4, 0)
	moto := vehicle.NewMotorcycle("Honda", "CBR", 2023, false)

	got := Lines(car, moto)
	if got[3] != "Fuel efficiency: +Inf km/l" {
		t.Errorf("car efficiency line = %q, want %q", got[3], "Fuel efficiency: +Inf km/l")
	}
}

// TestFprint verifies section separation: a blank line precedes the second and
// third headers but not the first.
func TestFprint(t *testing.T) {
	car, moto := Default()
	var sb strings.Builder
	if err := Fprint(&sb, car, moto); err != nil {
		t.Fatalf("Fprint() error = %v", err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "--- Car Information ---\n") {
		t.Errorf("output starts with %q, want car header first with no leading blank", out[:min(40, len(out))])
	}
	if !strings.Contains(out, "\n\n--- Motorcycle Information ---\n") {
		t.Error("output missing blank line before motorcycle header")
	}
	if !strings.Contains(out, "\n\n--- Using Polymorphism ---\n") {
		t.Error("output missing blank line before polymorphism header")
	}
	if lines := strings.Count(out, "\n"); lines != 17 {
		t.Errorf("output has %d newlines, want 17 (15 lines + 2 separators)", lines)
	}
}
