// Package sim implements an in-process ROM emulator that speaks the page
// protocol. It satisfies the transport contract of the bootloader package
// and the port contract of the command line runner, so a complete session
// can run without hardware.
//
//	dev := sim.New(sim.WithAckMode(protocol.AckChecksum))
//	prog := bootloader.New(dev, bootloader.WithAckMode(protocol.AckChecksum))
//	err := prog.Erase(ctx)
//
// Faults can be injected on a given exchange to exercise error paths:
//
//	dev := sim.New(sim.WithFault(3, sim.ShortReply))
package sim
