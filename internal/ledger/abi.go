package ledger

// vaultABI covers the subset of the vault contract this client calls.
const vaultABI = `[
  {"type":"function","name":"getMyFiles","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"tuple[]","internalType":"struct Vault.File[]","components":[
     {"name":"fileName","type":"string"},{"name":"fileType","type":"string"},{"name":"ipfsHash","type":"string"},
     {"name":"fileSize","type":"uint256"},{"name":"uploadTime","type":"uint256"},{"name":"owner","type":"address"},
     {"name":"isPublic","type":"bool"},{"name":"description","type":"string"},{"name":"tags","type":"string[]"}]}]},
  {"type":"function","name":"getUserFiles","stateMutability":"view","inputs":[{"name":"_user","type":"address"}],
   "outputs":[{"name":"","type":"tuple[]","internalType":"struct Vault.File[]","components":[
     {"name":"fileName","type":"string"},{"name":"fileType","type":"string"},{"name":"ipfsHash","type":"string"},
     {"name":"fileSize","type":"uint256"},{"name":"uploadTime","type":"uint256"},{"name":"owner","type":"address"},
     {"name":"isPublic","type":"bool"},{"name":"description","type":"string"},{"name":"tags","type":"string[]"}]}]},
  {"type":"function","name":"getPublicFiles","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"tuple[]","internalType":"struct Vault.File[]","components":[
     {"name":"fileName","type":"string"},{"name":"fileType","type":"string"},{"name":"ipfsHash","type":"string"},
     {"name":"fileSize","type":"uint256"},{"name":"uploadTime","type":"uint256"},{"name":"owner","type":"address"},
     {"name":"isPublic","type":"bool"},{"name":"description","type":"string"},{"name":"tags","type":"string[]"}]}]},
  {"type":"function","name":"shareAccess","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"tuple[]","internalType":"struct Vault.Access[]","components":[
     {"name":"user","type":"address"},{"name":"access","type":"bool"}]}]},
  {"type":"function","name":"getFileAccessList","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"tuple[]","internalType":"struct Vault.FileAccess[]","components":[
     {"name":"fileId","type":"uint256"},{"name":"user","type":"address"},{"name":"hasAccess","type":"bool"}]}]},
  {"type":"function","name":"allow","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"}],"outputs":[]},
  {"type":"function","name":"disallow","stateMutability":"nonpayable","inputs":[{"name":"user","type":"address"}],"outputs":[]},
  {"type":"function","name":"allowFile","stateMutability":"nonpayable",
   "inputs":[{"name":"fileId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[]},
  {"type":"function","name":"disallowFile","stateMutability":"nonpayable",
   "inputs":[{"name":"fileId","type":"uint256"},{"name":"user","type":"address"}],"outputs":[]}
]`
