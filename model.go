package main

import (
	"fmt"

	"github.com/cyclopcam/logs"
	"github.com/mattn/go-tflite"
	"github.com/mattn/go-tflite/delegates/edgetpu"
)

// Engine is the narrow binding to the tensor-execution engine: write the
// input tensor, run one synchronous pass, read an output tensor by its
// declared index.
type Engine interface {
	SetInput(pixels []byte) error
	Invoke() error
	Output(index int) []float32
}

type detectorOptions struct {
	Threads int
	EdgeTPU bool
}

// Detector owns the loaded model and its allocated tensor buffers.
type Detector struct {
	model  *tflite.Model
	interp *tflite.Interpreter
	engine Engine
	width  int
	height int
}

func newDetector(log logs.Log, modelPath string, opts detectorOptions) (*Detector, error) {
	model := tflite.NewModelFromFile(modelPath)
	if model == nil {
		return nil, fmt.Errorf("cannot load model %v", modelPath)
	}

	options := tflite.NewInterpreterOptions()
	defer options.Delete()
	options.SetNumThread(opts.Threads)

	if opts.EdgeTPU {
		devices, err := edgetpu.DeviceList()
		if err != nil {
			log.Warnf("Could not get EdgeTPU devices: %v", err)
		}
		if len(devices) == 0 {
			log.Warnf("No EdgeTPU devices found, running on CPU")
		} else {
			options.AddDelegate(edgetpu.New(devices[0]))
		}
	}

	interp := tflite.NewInterpreter(model, options)
	if interp == nil {
		model.Delete()
		return nil, fmt.Errorf("cannot create interpreter")
	}
	if status := interp.AllocateTensors(); status != tflite.OK {
		interp.Delete()
		model.Delete()
		return nil, fmt.Errorf("allocate tensors failed")
	}

	// Input shape is (1, height, width, 3)
	input := interp.GetInputTensor(0)
	return &Detector{
		model:  model,
		interp: interp,
		engine: &tfliteEngine{interp: interp},
		width:  input.Dim(2),
		height: input.Dim(1),
	}, nil
}

// Close releases the interpreter and the model (C objects underneath).
func (d *Detector) Close() {
	d.interp.Delete()
	d.model.Delete()
}

func (d *Detector) inputSize() (width, height int) {
	return d.width, d.height
}

// Detect runs one synchronous inference pass over a width*height*3 RGB pixel
// buffer and returns the detections whose score is at least threshold, in
// the model's native output order.
func (d *Detector) Detect(pixels []byte, threshold float32) ([]Detection, error) {
	if err := d.engine.SetInput(pixels); err != nil {
		return nil, err
	}
	if err := d.engine.Invoke(); err != nil {
		return nil, err
	}
	return filterDetections(d.engine, threshold), nil
}

// tfliteEngine implements Engine over a go-tflite interpreter.
type tfliteEngine struct {
	interp *tflite.Interpreter
}

func (e *tfliteEngine) SetInput(pixels []byte) error {
	input := e.interp.GetInputTensor(0)
	switch input.Type() {
	case tflite.UInt8:
		copy(input.UInt8s(), pixels)
	case tflite.Float32:
		f := input.Float32s()
		for i := 0; i < len(f) && i < len(pixels); i++ {
			f[i] = (float32(pixels[i]) - 127.5) / 127.5
		}
	default:
		return fmt.Errorf("unsupported input tensor type %v", input.Type())
	}
	return nil
}

func (e *tfliteEngine) Invoke() error {
	if status := e.interp.Invoke(); status != tflite.OK {
		return fmt.Errorf("invoke failed")
	}
	return nil
}

func (e *tfliteEngine) Output(index int) []float32 {
	output := e.interp.GetOutputTensor(index)
	switch output.Type() {
	case tflite.UInt8:
		f := output.UInt8s()
		loc := make([]float32, len(f))
		for i, v := range f {
			loc[i] = float32(v)
		}
		return loc
	case tflite.Float32:
		return copySlice(output.Float32s())
	}
	return nil
}
