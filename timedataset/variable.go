package timedataset

import (
	"errors"
	"fmt"
)

var ErrUnknownVariable = errors.New("unknown climate variable")

// Variable is one of the four daily climate measurements tracked by a TimeDataset
type Variable int

const (
	Temprature Variable = iota
	Humidity
	Rainfall
	Wind
)

// NumVariables is the fixed number of tracked climate variables
const NumVariables = 4

// Variables lists all climate variables in column order
var Variables = [NumVariables]Variable{Temprature, Humidity, Rainfall, Wind}

// variableNames are the column names of each variable. Temprature is intentionally spelled
// this way since its the column name of the historical records and the forecast output.
var variableNames = [NumVariables]string{"Temprature", "Humidity", "Rainfall", "Wind"}

func (v Variable) String() string {
	if v < 0 || int(v) >= NumVariables {
		return fmt.Sprintf("Variable(%d)", int(v))
	}
	return variableNames[v]
}

// ParseVariable returns the Variable given its column name
func ParseVariable(name string) (Variable, error) {
	for i, n := range variableNames {
		if n == name {
			return Variable(i), nil
		}
	}
	return 0, fmt.Errorf("%s, %w", name, ErrUnknownVariable)
}

func (v Variable) MarshalText() ([]byte, error) {
	if v < 0 || int(v) >= NumVariables {
		return nil, fmt.Errorf("%d, %w", int(v), ErrUnknownVariable)
	}
	return []byte(v.String()), nil
}

func (v *Variable) UnmarshalText(b []byte) error {
	parsed, err := ParseVariable(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
