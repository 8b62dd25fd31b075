package transport

import (
	"fmt"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

type serialPort struct {
	port serial.Port
	in   chan byte
}

func openSerialDevice(dev string, baud int) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(dev, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dev, err)
	}
	return port, nil
}

// OpenSerial opens a serial device as a Port.
func OpenSerial(dev string, baud int) (Port, error) {
	port, err := openSerialDevice(dev, baud)
	if err != nil {
		return nil, err
	}
	p := &serialPort{port: port, in: make(chan byte, inputDepth)}
	go func() {
		err := feedBytes(p.in, port)
		glog.Warningf("serial %s: %v", dev, err)
		close(p.in)
	}()
	return p, nil
}

func (p *serialPort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *serialPort) ReadByte() (byte, bool) {
	return takeByte(p.in)
}

func (p *serialPort) Close() error {
	return p.port.Close()
}
