package utils

import (
	"fmt"
	"math/big"
)

// GenericFlag encapsulates common attributes and an interface for value
type Flag struct {
	Name         string
	Abbreviation string
	Value        interface{}
	Usage        string
}

// Implementing the Flag interface
func (f *Flag) GetName() string         { return f.Name }
func (f *Flag) GetAbbreviation() string { return f.Abbreviation }
func (f *Flag) GetUsage() string        { return f.Usage }
func (f *Flag) GetValue() interface{}   { return f.Value }

// ****************************************
// **                                    **
// **       BIG INT FLAG                 **
// **       & CUSTOM VALUE               **
// **                                    **
// ****************************************
type BigIntValue big.Int

func newBigIntValue(val *big.Int) *BigIntValue {
	if val == nil {
		return nil
	}
	return (*BigIntValue)(new(big.Int).Set(val))
}

// Set accepts decimal or 0x-prefixed hex.
func (b *BigIntValue) Set(val string) error {
	bigIntVal, ok := new(big.Int).SetString(val, 0)
	if !ok {
		return fmt.Errorf("failed to parse *big.Int value: %s", val)
	}
	(*big.Int)(b).Set(bigIntVal)
	return nil
}

func (b *BigIntValue) Type() string {
	return "big.Int"
}

func (b *BigIntValue) String() string {
	return (*big.Int)(b).String()
}

func (b *BigIntValue) copy() *BigIntValue {
	return newBigIntValue((*big.Int)(b))
}
