package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/limaJavier/timetabling/pkg/model"
	"github.com/limaJavier/timetabling/pkg/planner"

	"github.com/samber/lo"
)

const catalogsDirectory = "../../test/catalogs/"

type ResultType int

const (
	found ResultType = iota
	noResult
	infeasible
)

var resultTypes = map[ResultType]string{
	found:      "found",
	noResult:   "no-result",
	infeasible: "infeasible",
}

type TestMetadata struct {
	Name       string
	Courses    int
	Components int
	Pins       int
}

type BenchmarkResult struct {
	Test            TestMetadata
	SortMode        planner.SortMode
	MaxCombinations int
	Duration        int64 // Microseconds
	Combinations    int
	Timetables      int
	Truncated       bool
	Overridden      bool
	Relaxed         bool
	Result          ResultType
}

func main() {
	directoryPtr := flag.String("dir", catalogsDirectory, "Directory holding the input files")
	outPtr := flag.String("out", "benchmark_results.csv", "Path of the CSV file to write")
	flag.Parse()

	tests, inputs := getTests(*directoryPtr)
	thresholds := []int{1_000, 10_000, planner.DefaultMaxCombinations}
	results := make([]BenchmarkResult, 0, len(tests)*len(planner.SortModes)*len(thresholds))

	for i, test := range tests {
		for _, sortMode := range planner.SortModes {
			for _, threshold := range thresholds {
				fmt.Printf("Benchmarking test \"%v\" with sort mode \"%v\" and threshold \"%v\"\n", test.Name, sortMode, threshold)
				results = append(results, measure(test, inputs[i], sortMode, threshold))
			}
		}
	}

	toCsv(*outPtr, results)
}

func getTests(directory string) ([]TestMetadata, []model.PlannerInput) {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(testFiles))
	inputs := make([]model.PlannerInput, 0, len(testFiles))
	for _, file := range testFiles {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		filename := filepath.Join(directory, file.Name())
		input, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, describe(filename, input))
		inputs = append(inputs, input)
	}
	return tests, inputs
}

func describe(name string, input model.PlannerInput) TestMetadata {
	components := lo.SumBy(input.Catalog.CourseCodes(), func(code string) int {
		course, _ := input.Catalog.Course(code)
		return len(course.Mains) + len(course.Labs) + len(course.Tutorials) + len(course.Seminars)
	})
	return TestMetadata{
		Name:       name,
		Courses:    input.Catalog.Len(),
		Components: components,
		Pins:       len(input.Pins),
	}
}

func measure(test TestMetadata, input model.PlannerInput, sortMode planner.SortMode, threshold int) BenchmarkResult {
	engine := planner.NewPlanner(
		input.Catalog,
		planner.StaticPins(input.Pins),
		planner.StaticGrid(input.Grid),
		planner.WithMaxCombinations(threshold),
	)

	generation, err := engine.Generate(sortMode)
	if err != nil {
		log.Fatalf("an error occurred during the generation at test \"%v\" using sort mode \"%v\": %v", test.Name, sortMode, err)
	}

	result := found
	if generation.Sentinel() {
		result = infeasible
	} else if generation.NoResultFound {
		result = noResult
	}

	performance := engine.Performance()
	return BenchmarkResult{
		Test:            test,
		SortMode:        sortMode,
		MaxCombinations: threshold,
		Duration:        performance.Duration().Microseconds(),
		Combinations:    performance.CombinationsProcessed,
		Timetables:      performance.ValidCount,
		Truncated:       generation.Truncated,
		Overridden:      generation.Overridden,
		Relaxed:         generation.Relaxed,
		Result:          result,
	}
}

func toCsv(path string, results []BenchmarkResult) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header()); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		if err := writer.Write(record(result)); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func header() []string {
	return []string{"Test", "Courses", "Components", "Pins", "Sort Mode", "Max Combinations", "Duration(us)", "Combinations", "Timetables", "Truncated", "Overridden", "Relaxed", "Result"}
}

func record(result BenchmarkResult) []string {
	return []string{
		result.Test.Name,
		fmt.Sprintf("%d", result.Test.Courses),
		fmt.Sprintf("%d", result.Test.Components),
		fmt.Sprintf("%d", result.Test.Pins),
		string(result.SortMode),
		fmt.Sprintf("%d", result.MaxCombinations),
		fmt.Sprintf("%d", result.Duration),
		fmt.Sprintf("%d", result.Combinations),
		fmt.Sprintf("%d", result.Timetables),
		fmt.Sprintf("%v", result.Truncated),
		fmt.Sprintf("%v", result.Overridden),
		fmt.Sprintf("%v", result.Relaxed),
		resultTypes[result.Result],
	}
}
