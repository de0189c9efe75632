package main

import (
	"fmt"
	"log"

	"github.com/danieldibenedetto/binomialOptionPricing/binomial"
	"github.com/danieldibenedetto/binomialOptionPricing/calibration"
	"github.com/danieldibenedetto/binomialOptionPricing/running_max"
)

func main() {
	european, err := binomial.PriceEuropean(200, 0.1, 1)
	if err != nil {
		log.Fatalf("price fail: %s", err)
	}
	american, _ := binomial.PriceAmerican(200, 0.1, 1)
	fmt.Println(fmt.Sprintf("european: %v, american: %v", european, american))

	implied, err := calibration.Single(200, 1, european)
	if err != nil {
		log.Fatalf("calibrate fail: %s", err)
	}
	log.Printf("implied step factor: %v", implied)

	// two-block book quoted off known parameters, then recovered
	quote1, _ := calibration.BinomialPrice(100, 0.08, 1)
	quote2, _ := calibration.CompoundPrice([]int{100, 100}, []float64{0.08, 0.12}, 1)
	book := []calibration.Instrument{
		{N: 100, Strike: 1, Price: quote1},
		{N: 100, Strike: 1, Price: quote2},
	}
	sequential, err := calibration.Sequential(book)
	if err != nil {
		log.Fatalf("sequential calibrate fail: %s", err)
	}
	log.Printf("sequential step factors: %+v", sequential)
	joint, err := calibration.Joint(book)
	if err != nil {
		log.Fatalf("joint calibrate fail: %s", err)
	}
	log.Printf("joint step factors: %+v", joint)

	expected, err := running_max.Expected(100, 0.1)
	if err != nil {
		log.Fatalf("running max fail: %s", err)
	}
	log.Printf("expected running max: %v", expected)
}
