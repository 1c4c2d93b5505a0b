package pkg

import (
	"sync"
)

// ProbeResult es el resultado de la sonda de conexión de un host
type ProbeResult struct {
	Host  string
	Alive bool
	Err   error
}

// UploadOutcome es el resultado de la subida a un host
type UploadOutcome struct {
	Host     string
	FileCode string
	Err      error
}

// ProbeHosts comprueba la conexión con todos los hosts de forma concurrente.
// El fallo de una sonda nunca aborta ni retrasa a las demás: cada resultado
// se recoge por separado.
func ProbeHosts(clients []*HostClient) []ProbeResult {
	results := make([]ProbeResult, len(clients))

	var wg sync.WaitGroup
	for i, client := range clients {
		wg.Add(1)
		go func(i int, client *HostClient) {
			defer wg.Done()
			_, err := client.GetAccountInfo()
			results[i] = ProbeResult{Host: client.Config.Name, Alive: err == nil, Err: err}
		}(i, client)
	}
	wg.Wait()

	return results
}

// UploadToHosts lanza la subida a todos los clientes indicados de forma
// concurrente y recoge el resultado de cada uno, con su error si lo hubo
func UploadToHosts(clients []*HostClient, downloadLink string) []UploadOutcome {
	results := make([]UploadOutcome, len(clients))

	var wg sync.WaitGroup
	for i, client := range clients {
		wg.Add(1)
		go func(i int, client *HostClient) {
			defer wg.Done()
			filecode, err := client.UploadByURL(downloadLink)
			results[i] = UploadOutcome{Host: client.Config.Name, FileCode: filecode, Err: err}
		}(i, client)
	}
	wg.Wait()

	return results
}
