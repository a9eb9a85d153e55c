package m

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line is one training example: a flattened feature vector and a one-hot target.
type Line struct {
	Inputs  []float64
	Targets []float64
}
type Lines []Line

// first val in line is the label, rest are the pixel densities
func GetLinesMNIST(reader io.Reader, inputNum, outputNum int) (Lines, error) {
	var lines Lines
	r := csv.NewReader(bufio.NewReader(reader))
	r.FieldsPerRecord = inputNum + 1
	r.ReuseRecord = true
	lineNum := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNum++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
				return lines, errInvalidLine{lineNum: lineNum, splits: len(record), expected: inputNum + 1}
			}
			return lines, fmt.Errorf("reading record %d: %w", lineNum, err)
		}

		inputs := make([]float64, inputNum)
		for i := range inputs {
			x, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return lines, fmt.Errorf("parsing pixel %d on line %d: %w", i, lineNum, err)
			}
			inputs[i] = x / 255.0
		}

		label, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return lines, fmt.Errorf("parsing label on line %d: %w", lineNum, err)
		}
		if label < 0 || label >= outputNum {
			return lines, fmt.Errorf("label %d on line %d outside [0,%d)", label, lineNum, outputNum)
		}
		targets := make([]float64, outputNum)
		targets[label] = 1

		lines = append(lines, Line{
			Inputs:  inputs,
			Targets: targets,
		})
	}
	return lines, nil
}

// GetLines reads comma separated rows of inputNum inputs followed by outputNum targets.
func GetLines(reader io.Reader, inputNum, outputNum int) (Lines, error) {
	scanner := bufio.NewScanner(reader)
	var lines Lines
	var lineNum int
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		splits := strings.Split(text, ",")
		if len(splits) != inputNum+outputNum {
			return lines, errInvalidLine{
				lineNum:  lineNum,
				splits:   len(splits),
				expected: inputNum + outputNum,
			}
		}
		inputs := make([]float64, inputNum)
		targets := make([]float64, outputNum)

		for i, split := range splits {
			num, err := strconv.ParseFloat(strings.TrimSpace(split), 64)
			if i < inputNum {
				if err != nil {
					return lines, fmt.Errorf("parsing input: %w", err)
				}
				inputs[i] = num
			} else {
				if err != nil {
					return lines, fmt.Errorf("parsing target: %w", err)
				}
				targets[i-inputNum] = num
			}
		}
		lines = append(lines, Line{
			Inputs:  inputs,
			Targets: targets,
		})
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("scanning lines: %w", err)
	}
	return lines, nil
}

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.splits)
}

// Features returns the inputs of every line as rows.
func (lines Lines) Features() [][]float64 {
	rows := make([][]float64, len(lines))
	for i, line := range lines {
		rows[i] = line.Inputs
	}
	return rows
}

// LineSplitter returns the iterationNum-th batch of size batchSize, or nothing when out of range.
func LineSplitter(batchSize, iterationNum int, lines Lines) Lines {
	start := batchSize * iterationNum
	end := batchSize * (iterationNum + 1)

	if start < 0 || start >= len(lines) || end <= start {
		return Lines{}
	}
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}
