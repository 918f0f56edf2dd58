package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
)

func main() {
	parser := argparse.NewParser("tflite-detect", "Detect objects in a single image with a TFLite model")
	modelPath := parser.String("m", "model", &argparse.Options{Help: "Path to TFLite model file", Default: "model/detect.tflite"})
	labelPath := parser.String("l", "label", &argparse.Options{Help: "Path to label file", Default: "model/coco_labels.txt"})
	imagePath := parser.String("i", "image", &argparse.Options{Help: "Image file, or - for stdin", Default: "-"})
	threshold := parser.Float("t", "threshold", &argparse.Options{Help: "Minimum confidence score", Default: 0.5})
	threads := parser.Int("", "threads", &argparse.Options{Help: "Number of interpreter threads", Default: 4})
	useEdgeTPU := parser.Flag("", "edgetpu", &argparse.Options{Help: "Run on an EdgeTPU accelerator if one is present"})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, _ := logs.NewLog()

	opts := detectorOptions{Threads: *threads, EdgeTPU: *useEdgeTPU}
	if err := run(logger, *modelPath, *labelPath, *imagePath, float32(*threshold), opts); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger logs.Log, modelPath, labelPath, imagePath string, threshold float32, opts detectorOptions) error {
	labels, err := loadLabels(labelPath)
	if err != nil {
		return fmt.Errorf("load labels %v: %w", labelPath, err)
	}

	detector, err := newDetector(logger, modelPath, opts)
	if err != nil {
		return err
	}
	defer detector.Close()

	width, height := detector.inputSize()
	logger.Infof("Loaded model %v (input %vx%v, %v labels)", modelPath, width, height, len(labels))

	data, err := readImage(imagePath)
	if err != nil {
		return err
	}

	pixels, err := preprocessImage(data, width, height)
	if err != nil {
		return err
	}

	detections, err := detector.Detect(pixels, threshold)
	if err != nil {
		return err
	}

	for _, d := range detections {
		line, err := formatDetection(labels, d)
		if err != nil {
			return err
		}
		fmt.Println(line)
	}
	return nil
}

func readImage(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func formatDetection(labels map[int]string, d Detection) (string, error) {
	label, ok := labels[d.ClassID]
	if !ok {
		return "", fmt.Errorf("no label for class %v", d.ClassID)
	}
	return fmt.Sprintf("id: %d, type: %s, score: %.2f", d.ClassID, label, d.Score), nil
}
