package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/qurcode/qur/fountain"
)

// BenchmarkResult stores timing data for fountain coding operations
type BenchmarkResult struct {
	MessageLen  int           `json:"message_len"`
	FragmentLen int           `json:"fragment_len"`
	SeqLen      int           `json:"seq_len"`
	Iterations  int           `json:"iterations"`
	PlainPart   time.Duration `json:"plain_part_ns"` // Average time for a plain part
	MixedPart   time.Duration `json:"mixed_part_ns"` // Average time for a mixed part
	Reassemble  time.Duration `json:"reassemble_ns"` // Average time to decode with every third part dropped
	PartsUsed   int           `json:"parts_used"`    // Parts consumed by the last reassembly
}

func main() {
	messageLen := flag.Int("message-len", 10000, "Message length in bytes")
	fragmentLen := flag.Int("fragment-len", 200, "Fragment length in bytes")
	iterations := flag.Int("iterations", 100, "Number of iterations per benchmark")
	outputFile := flag.String("output", "fountain_benchmark.json", "Output file for benchmark results")
	flag.Parse()

	message := make([]byte, *messageLen)
	rand.New(rand.NewSource(1)).Read(message)

	enc, err := fountain.NewEncoder(message, *fragmentLen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create encoder: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Benchmarking fountain coding with:\n")
	fmt.Printf("  Message length: %d bytes\n", *messageLen)
	fmt.Printf("  Fragment length: %d bytes\n", *fragmentLen)
	fmt.Printf("  Sequence length: %d\n", enc.SeqLen())
	fmt.Printf("  Iterations: %d\n", *iterations)
	fmt.Println()

	result := BenchmarkResult{
		MessageLen:  *messageLen,
		FragmentLen: *fragmentLen,
		SeqLen:      enc.SeqLen(),
		Iterations:  *iterations,
	}

	// Benchmark plain part generation, cycling through the sequence
	fmt.Print("Benchmarking plain parts... ")
	seqLen := uint64(enc.SeqLen())
	start := time.Now()
	for i := 0; i < *iterations; i++ {
		enc.PartAt(uint64(i)%seqLen + 1)
	}
	result.PlainPart = time.Since(start) / time.Duration(*iterations)
	fmt.Printf("%v\n", result.PlainPart)

	// Benchmark mixed part generation past the sequence end
	fmt.Print("Benchmarking mixed parts... ")
	start = time.Now()
	for i := 0; i < *iterations; i++ {
		enc.PartAt(seqLen + uint64(i) + 1)
	}
	result.MixedPart = time.Since(start) / time.Duration(*iterations)
	fmt.Printf("%v\n", result.MixedPart)

	// Benchmark reassembly with every third part dropped
	fmt.Print("Benchmarking reassembly... ")
	start = time.Now()
	for i := 0; i < *iterations; i++ {
		dec := fountain.NewDecoder()
		used := 0
		for seqNum := uint64(1); !dec.Complete(); seqNum++ {
			if seqNum%3 == 0 {
				continue
			}
			if _, err := dec.Receive(enc.PartAt(seqNum)); err != nil {
				fmt.Fprintf(os.Stderr, "Receive failed: %v\n", err)
				os.Exit(1)
			}
			used++
		}
		if _, err := dec.Message(); err != nil {
			fmt.Fprintf(os.Stderr, "Message failed: %v\n", err)
			os.Exit(1)
		}
		result.PartsUsed = used
	}
	result.Reassemble = time.Since(start) / time.Duration(*iterations)
	fmt.Printf("%v\n", result.Reassemble)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal results: %v\n", err)
		os.Exit(1)
	}

	err = os.WriteFile(*outputFile, data, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write results to file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nBenchmark results written to: %s\n", *outputFile)
}
