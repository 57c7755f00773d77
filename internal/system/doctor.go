package system

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Report summarizes the host a live output session would run on.
type Report struct {
	Hostname      string
	OS            string
	Platform      string
	KernelVersion string
	UptimeSec     uint64

	CPUModel string
	CPUCores int

	TotalMemMB     uint64
	AvailableMemMB uint64
}

// Probe collects host facts. Individual probe failures leave their
// fields zeroed rather than failing the whole report; a machine with an
// unreadable CPU model can still run an output.
func Probe() (*Report, error) {
	r := &Report{}

	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("probe host: %w", err)
	}
	r.Hostname = info.Hostname
	r.OS = info.OS
	r.Platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
	r.KernelVersion = info.KernelVersion
	r.UptimeSec = info.Uptime

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		r.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil {
		r.CPUCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		r.TotalMemMB = vm.Total / (1 << 20)
		r.AvailableMemMB = vm.Available / (1 << 20)
	}
	return r, nil
}
