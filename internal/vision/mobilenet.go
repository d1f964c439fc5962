package vision

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/your-org/fitcheck/internal/models"
)

const (
	mobileNetInput   = 224
	mobileNetClasses = 1000
	// mobileNetTopK matches the number of predictions the browser MobileNet returns by default.
	mobileNetTopK = 3
)

// ImageNet normalization on the 0-255 scale.
var (
	imageNetMean = [3]float32{0.485 * 255, 0.456 * 255, 0.406 * 255}
	imageNetStd  = [3]float32{0.229 * 255, 0.224 * 255, 0.225 * 255}
)

// MobileNet runs an ImageNet MobileNetV2 ONNX model in-process and returns
// the top predicted class names with their probabilities.
type MobileNet struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	labels       []string
}

// NewMobileNet loads the model and its class labels file (one label per line,
// in model output order). The ONNX runtime environment must already be initialized.
func NewMobileNet(modelPath, labelsPath string) (*MobileNet, error) {
	labels, err := LoadLabels(labelsPath)
	if err != nil {
		return nil, err
	}
	if len(labels) != mobileNetClasses {
		return nil, fmt.Errorf("labels file %s: expected %d labels, got %d", labelsPath, mobileNetClasses, len(labels))
	}

	inputShape := ort.NewShape(1, 3, mobileNetInput, mobileNetInput)
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}

	outputShape := ort.NewShape(1, mobileNetClasses)
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"},
		[]string{"output"},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		nil,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create mobilenet session: %w", err)
	}

	return &MobileNet{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		labels:       labels,
	}, nil
}

// Labels classifies img and returns the top predictions, highest first.
func (m *MobileNet) Labels(ctx context.Context, img image.Image) ([]models.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input := imageToFloat32CHW(img, mobileNetInput, mobileNetInput, imageNetMean, imageNetStd)

	m.mu.Lock()
	copy(m.inputTensor.GetData(), input)
	if err := m.session.Run(); err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("run mobilenet: %w", err)
	}
	logits := make([]float32, mobileNetClasses)
	copy(logits, m.outputTensor.GetData())
	m.mu.Unlock()

	return TopK(Softmax(logits), m.labels, mobileNetTopK), nil
}

func (m *MobileNet) Close() {
	if m.session != nil {
		m.session.Destroy()
	}
	if m.inputTensor != nil {
		m.inputTensor.Destroy()
	}
	if m.outputTensor != nil {
		m.outputTensor.Destroy()
	}
}

// LoadLabels reads a newline separated class label file, skipping blank lines.
func LoadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()

	var labels []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			labels = append(labels, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	return labels, nil
}

// Softmax converts logits into probabilities.
func Softmax(logits []float32) []float64 {
	out := make([]float64, len(logits))
	if len(logits) == 0 {
		return out
	}
	maxLogit := float64(logits[0])
	for _, l := range logits[1:] {
		maxLogit = math.Max(maxLogit, float64(l))
	}
	var sum float64
	for i, l := range logits {
		out[i] = math.Exp(float64(l) - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// TopK pairs probabilities with labels and keeps the k most probable.
func TopK(probs []float64, labels []string, k int) []models.Label {
	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return probs[idx[a]] > probs[idx[b]] })

	if k > len(idx) {
		k = len(idx)
	}
	out := make([]models.Label, 0, k)
	for _, i := range idx[:k] {
		name := fmt.Sprintf("class_%d", i)
		if i < len(labels) {
			name = labels[i]
		}
		out = append(out, models.Label{Label: name, Score: probs[i]})
	}
	return out
}
