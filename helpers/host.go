package helpers

import (
	"fmt"
	"net"
)

// ExtractHostPort returns the host and port other processes should dial to reach lis. The port always comes from
// the bound address, so listeners opened on ":0" report the ephemeral port the kernel picked. A wildcard bind
// (0.0.0.0, ::) is replaced by the first global unicast address of an up interface, IPv4 preferred; when the
// machine has none the loopback address is returned.
func ExtractHostPort(lis net.Listener) (string, int, error) {
	if lis == nil {
		return "", 0, fmt.Errorf("listener is nil")
	}
	tcpAddr, ok := lis.Addr().(*net.TCPAddr)
	if !ok {
		return "", 0, fmt.Errorf("listener address %v is not a TCP address", lis.Addr())
	}
	if tcpAddr.Port <= 0 {
		return "", 0, fmt.Errorf("listener address %v has no port", tcpAddr)
	}
	if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
		return tcpAddr.IP.String(), tcpAddr.Port, nil
	}
	ip, err := firstGlobalUnicast()
	if err != nil {
		return "", 0, err
	}
	return ip.String(), tcpAddr.Port, nil
}

func firstGlobalUnicast() (net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	var v6 net.IP
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch a := addr.(type) {
			case *net.IPNet:
				ip = a.IP
			case *net.IPAddr:
				ip = a.IP
			}
			if ip == nil || !ip.IsGlobalUnicast() {
				continue
			}
			if ip4 := ip.To4(); ip4 != nil {
				return ip4, nil
			}
			if v6 == nil {
				v6 = ip
			}
		}
	}
	if v6 != nil {
		return v6, nil
	}
	return net.IPv4(127, 0, 0, 1), nil
}
